// ABOUTME: Tests for contact and company MCP tool handlers
// ABOUTME: Validates tool input/output and error handling
package handlers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddContactHandler(t *testing.T) {
	deps := setupDeps(t)
	handler := NewContactHandlers(deps)

	_, out, err := handler.AddContact(context.Background(), nil, AddContactInput{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "555-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", out.Name)
	assert.Equal(t, "john@example.com", out.Email)
	_, err = uuid.Parse(out.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, out.CreatedAt)
}

func TestAddContactValidation(t *testing.T) {
	handler := NewContactHandlers(setupDeps(t))

	_, _, err := handler.AddContact(context.Background(), nil, AddContactInput{Email: "nobody@example.com"})
	require.Error(t, err)
	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestFindContactsHandler(t *testing.T) {
	deps := setupDeps(t)
	handler := NewContactHandlers(deps)
	ctx := context.Background()

	for _, name := range []string{"Alice Smith", "Bob Jones", "Alicia Keys"} {
		_, _, err := handler.AddContact(ctx, nil, AddContactInput{Name: name})
		require.NoError(t, err)
	}

	_, out, err := handler.FindContacts(ctx, nil, FindContactsInput{Query: "ali"})
	require.NoError(t, err)
	assert.Len(t, out.Contacts, 2)

	_, out, err = handler.FindContacts(ctx, nil, FindContactsInput{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Contacts, 1)
}

func TestGetContactHandler(t *testing.T) {
	deps := setupDeps(t)
	ctx := context.Background()
	contacts := NewContactHandlers(deps)

	_, ada, err := contacts.AddContact(ctx, nil, AddContactInput{Name: "Ada"})
	require.NoError(t, err)
	_, _, err = NewDealHandlers(deps).CreateDeal(ctx, nil, CreateDealInput{Title: "Apollo", ContactID: ada.ID})
	require.NoError(t, err)

	_, out, err := contacts.GetContact(ctx, nil, GetContactInput{ID: ada.ID})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Contact.Name)
	require.Len(t, out.Deals, 1)
	assert.Equal(t, "Ada", out.Deals[0].Contact)
	assert.Empty(t, out.Activities)

	_, _, err = contacts.GetContact(ctx, nil, GetContactInput{ID: uuid.New().String()})
	var nf *models.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, _, err = contacts.GetContact(ctx, nil, GetContactInput{ID: "not-a-uuid"})
	assert.Error(t, err)
}

func TestUpdateAndDeleteContactHandler(t *testing.T) {
	deps := setupDeps(t)
	ctx := context.Background()
	handler := NewContactHandlers(deps)

	_, created, err := handler.AddContact(ctx, nil, AddContactInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	title := "Countess"
	_, updated, err := handler.UpdateContact(ctx, nil, UpdateContactInput{ID: created.ID, Position: &title})
	require.NoError(t, err)
	assert.Equal(t, "Countess", updated.Position)
	assert.Equal(t, "ada@example.com", updated.Email)

	_, deleted, err := handler.DeleteContact(ctx, nil, DeleteInput{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Contact deleted successfully", deleted.Message)

	_, _, err = handler.DeleteContact(ctx, nil, DeleteInput{ID: created.ID})
	assert.Error(t, err)
}

func TestCompanyHandlers(t *testing.T) {
	handler := NewCompanyHandlers(setupDeps(t))
	ctx := context.Background()

	_, acme, err := handler.AddCompany(ctx, nil, AddCompanyInput{Name: "Acme Corp", Domain: "acme.com"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", acme.Name)
	_, _, err = handler.AddCompany(ctx, nil, AddCompanyInput{Name: "Globex", Domain: "globex.io"})
	require.NoError(t, err)

	_, out, err := handler.FindCompanies(ctx, nil, FindCompaniesInput{Query: "acme.com"})
	require.NoError(t, err)
	require.Len(t, out.Companies, 1)
	assert.Equal(t, acme.ID, out.Companies[0].ID)

	_, _, err = handler.AddCompany(ctx, nil, AddCompanyInput{})
	assert.Error(t, err)
}
