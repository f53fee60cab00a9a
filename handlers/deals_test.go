// ABOUTME: Tests for deal, task and activity MCP tool handlers
// ABOUTME: Covers stage moves and task toggles run through page sessions
package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addContact(t *testing.T, deps Deps, name string) ContactOutput {
	t.Helper()
	_, out, err := NewContactHandlers(deps).AddContact(context.Background(), nil, AddContactInput{Name: name})
	require.NoError(t, err)
	return out
}

func TestCreateDealHandler(t *testing.T) {
	deps := setupDeps(t)
	ada := addContact(t, deps, "Ada")
	handler := NewDealHandlers(deps)
	ctx := context.Background()

	_, deal, err := handler.CreateDeal(ctx, nil, CreateDealInput{
		Title:             "Apollo",
		ContactID:         ada.ID,
		Value:             150000,
		Stage:             "proposal",
		ExpectedCloseDate: "2024-06-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "Proposal", deal.Stage)
	assert.Equal(t, int64(150000), deal.Value)
	assert.Equal(t, ada.ID, deal.ContactID)
	assert.NotEmpty(t, deal.ExpectedCloseDate)

	_, _, err = handler.CreateDeal(ctx, nil, CreateDealInput{Title: "No contact"})
	assert.ErrorContains(t, err, "contact_id is required")

	_, _, err = handler.CreateDeal(ctx, nil, CreateDealInput{Title: "Bad date", ContactID: ada.ID, ExpectedCloseDate: "soon"})
	assert.ErrorContains(t, err, "expected_close_date")
}

func TestUpdateDealHandler(t *testing.T) {
	deps := setupDeps(t)
	ada := addContact(t, deps, "Ada")
	handler := NewDealHandlers(deps)
	ctx := context.Background()

	_, deal, err := handler.CreateDeal(ctx, nil, CreateDealInput{Title: "Apollo", ContactID: ada.ID, ExpectedCloseDate: "2024-06-20"})
	require.NoError(t, err)

	value := int64(999)
	none := ""
	_, updated, err := handler.UpdateDeal(ctx, nil, UpdateDealInput{ID: deal.ID, Value: &value, ExpectedCloseDate: &none})
	require.NoError(t, err)
	assert.Equal(t, int64(999), updated.Value)
	assert.Empty(t, updated.ExpectedCloseDate)
	assert.Equal(t, "Apollo", updated.Title)
}

func TestMoveDealStageHandler(t *testing.T) {
	deps := setupDeps(t)
	ada := addContact(t, deps, "Ada")
	handler := NewDealHandlers(deps)
	ctx := context.Background()

	_, deal, err := handler.CreateDeal(ctx, nil, CreateDealInput{Title: "Apollo", ContactID: ada.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lead", deal.Stage)

	_, moved, err := handler.MoveDealStage(ctx, nil, MoveDealStageInput{ID: deal.ID, Stage: "won"})
	require.NoError(t, err)
	assert.Equal(t, "Deal moved to Won", moved.Message)
	assert.Equal(t, "Won", moved.Deal.Stage)
	assert.Equal(t, "Ada", moved.Deal.Contact)

	_, _, err = handler.MoveDealStage(ctx, nil, MoveDealStageInput{ID: uuid.New().String(), Stage: "Won"})
	assert.ErrorContains(t, err, "Deal not found")

	_, _, err = handler.MoveDealStage(ctx, nil, MoveDealStageInput{ID: deal.ID})
	assert.ErrorContains(t, err, "stage is required")
}

func TestTaskHandlers(t *testing.T) {
	deps := setupDeps(t)
	ada := addContact(t, deps, "Ada")
	handler := NewTaskHandlers(deps)
	ctx := context.Background()

	_, task, err := handler.AddTask(ctx, nil, AddTaskInput{
		Title:     "Send proposal",
		DueDate:   "2024-06-14T09:00:00Z",
		Priority:  "HIGH",
		ContactID: ada.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "high", task.Priority)
	assert.True(t, task.Overdue)

	_, toggled, err := handler.ToggleTask(ctx, nil, ToggleTaskInput{ID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, "Task completed", toggled.Message)
	assert.True(t, toggled.Task.Completed)
	assert.False(t, toggled.Task.Overdue)
	assert.Equal(t, "Ada", toggled.Task.Contact)

	_, toggled, err = handler.ToggleTask(ctx, nil, ToggleTaskInput{ID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, "Task reopened", toggled.Message)

	_, _, err = handler.AddTask(ctx, nil, AddTaskInput{Title: "No due date"})
	assert.ErrorContains(t, err, "due_date is required")

	_, _, err = handler.ToggleTask(ctx, nil, ToggleTaskInput{ID: uuid.New().String()})
	assert.Error(t, err)

	_, deleted, err := handler.DeleteTask(ctx, nil, DeleteInput{ID: task.ID})
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)
}

func TestLogActivityHandler(t *testing.T) {
	deps := setupDeps(t)
	ada := addContact(t, deps, "Ada")
	handler := NewActivityHandlers(deps)
	ctx := context.Background()

	_, activity, err := handler.LogActivity(ctx, nil, LogActivityInput{
		Type:        "Meeting",
		ContactID:   ada.ID,
		Description: "Kickoff",
		Date:        "2024-06-14T15:00:00Z",
		Duration:    45,
	})
	require.NoError(t, err)
	assert.Equal(t, "meeting", activity.Type)
	assert.Equal(t, 45, activity.Duration)

	_, _, err = handler.LogActivity(ctx, nil, LogActivityInput{ContactID: ada.ID})
	assert.Error(t, err)

	_, _, err = handler.DeleteActivity(ctx, nil, DeleteInput{ID: activity.ID})
	require.NoError(t, err)
}
