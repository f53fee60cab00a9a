// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements add_task, toggle_task and delete_task tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type TaskHandlers struct {
	deps Deps
}

func NewTaskHandlers(deps Deps) *TaskHandlers {
	return &TaskHandlers{deps: deps}
}

type AddTaskInput struct {
	Title       string `json:"title" jsonschema:"Task title (required)"`
	Description string `json:"description,omitempty" jsonschema:"Task details"`
	DueDate     string `json:"due_date" jsonschema:"Due date in ISO 8601 format (required)"`
	Priority    string `json:"priority,omitempty" jsonschema:"Priority: low, medium, high (default medium)"`
	ContactID   string `json:"contact_id,omitempty" jsonschema:"ID of the related contact"`
}

func (h *TaskHandlers) AddTask(ctx context.Context, _ *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	if input.DueDate == "" {
		return nil, TaskOutput{}, fmt.Errorf("due_date is required")
	}
	due, err := parseTime(input.DueDate, "due_date")
	if err != nil {
		return nil, TaskOutput{}, err
	}
	contactID, err := optionalID(input.ContactID, "contact_id")
	if err != nil {
		return nil, TaskOutput{}, err
	}

	task, err := h.deps.Repos.Tasks.Create(ctx, models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     due,
		Priority:    models.Priority(input.Priority),
		ContactID:   contactID,
	})
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}
	return nil, taskToOutput(task, h.deps.now()), nil
}

type ToggleTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

type ToggleTaskOutput struct {
	Task    TaskOutput `json:"task"`
	Message string     `json:"message"`
}

// ToggleTask flips completion through a tasks page session.
func (h *TaskHandlers) ToggleTask(ctx context.Context, _ *mcp.CallToolRequest, input ToggleTaskInput) (*mcp.CallToolResult, ToggleTaskOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, ToggleTaskOutput{}, err
	}

	c, err := session(ctx, h.deps, pages.Tasks(h.deps.Labels), pages.TasksCriteria{})
	if err != nil {
		return nil, ToggleTaskOutput{}, err
	}

	var task models.Task
	found := false
	for _, t := range c.Data().Tasks {
		if t.ID == id {
			task, found = t, true
		}
	}
	if !found {
		return nil, ToggleTaskOutput{}, &models.NotFoundError{Entity: models.TaskKind.Name, ID: id}
	}

	if err := c.Mutate(ctx, pages.ToggleTask(h.deps.Repos, task)); err != nil {
		return nil, ToggleTaskOutput{}, fmt.Errorf("%s: %w", c.Current().Message, err)
	}

	out := ToggleTaskOutput{Message: c.Current().Message}
	for _, row := range c.Current().View.Rows {
		if row.Task.ID == id {
			out.Task = taskToOutput(row.Task, h.deps.now())
			out.Task.DueLabel = row.Due.Text
			out.Task.Contact = row.Contact
		}
	}
	return nil, out, nil
}

func (h *TaskHandlers) DeleteTask(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	if _, err := h.deps.Repos.Tasks.Delete(ctx, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete task: %w", err)
	}
	return nil, DeleteOutput{ID: id.String(), Message: "Task deleted successfully"}, nil
}
