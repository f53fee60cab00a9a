// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, get_contact, update_contact and delete_contact
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	deps Deps
}

func NewContactHandlers(deps Deps) *ContactHandlers {
	return &ContactHandlers{deps: deps}
}

type AddContactInput struct {
	Name     string `json:"name" jsonschema:"Contact's full name (required)"`
	Email    string `json:"email,omitempty" jsonschema:"Email address"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Company  string `json:"company,omitempty" jsonschema:"Company name"`
	Position string `json:"position,omitempty" jsonschema:"Job title"`
	Notes    string `json:"notes,omitempty" jsonschema:"Notes about the contact"`
}

func (h *ContactHandlers) AddContact(ctx context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := h.deps.Repos.Contacts.Create(ctx, models.Contact{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Position: input.Position,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search term matched against name, email and company"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Total    int             `json:"total"`
}

func (h *ContactHandlers) FindContacts(ctx context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	c, err := session(ctx, h.deps, pages.Contacts(), pages.ContactsCriteria{Search: input.Query})
	if err != nil {
		return nil, FindContactsOutput{}, err
	}

	v := c.Current().View
	out := FindContactsOutput{Contacts: []ContactOutput{}, Total: v.Total}
	for i, contact := range v.Contacts {
		if i >= limit {
			break
		}
		out.Contacts = append(out.Contacts, contactToOutput(contact))
	}
	return nil, out, nil
}

type GetContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

type ContactDetailOutput struct {
	Contact    ContactOutput    `json:"contact"`
	Deals      []DealOutput     `json:"deals"`
	Activities []ActivityOutput `json:"activities"`
}

func (h *ContactHandlers) GetContact(ctx context.Context, _ *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, ContactDetailOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, ContactDetailOutput{}, err
	}

	d, err := pages.LoadContactDetail(ctx, h.deps.Repos, id)
	if err != nil {
		return nil, ContactDetailOutput{}, fmt.Errorf("failed to load contact: %w", err)
	}

	out := ContactDetailOutput{
		Contact:    contactToOutput(d.Contact),
		Deals:      make([]DealOutput, 0, len(d.Deals)),
		Activities: make([]ActivityOutput, 0, len(d.Activities)),
	}
	for _, deal := range d.Deals {
		o := dealToOutput(deal)
		o.Contact = d.Contact.Name
		out.Deals = append(out.Deals, o)
	}
	for _, a := range d.Activities {
		o := activityToOutput(a)
		o.Contact = d.Contact.Name
		out.Activities = append(out.Activities, o)
	}
	return nil, out, nil
}

type UpdateContactInput struct {
	ID       string  `json:"id" jsonschema:"Contact ID (required)"`
	Name     *string `json:"name,omitempty" jsonschema:"New name"`
	Email    *string `json:"email,omitempty" jsonschema:"New email"`
	Phone    *string `json:"phone,omitempty" jsonschema:"New phone"`
	Company  *string `json:"company,omitempty" jsonschema:"New company name"`
	Position *string `json:"position,omitempty" jsonschema:"New job title"`
	Notes    *string `json:"notes,omitempty" jsonschema:"New notes"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, ContactOutput{}, err
	}

	contact, err := h.deps.Repos.Contacts.Update(ctx, id, models.ContactPatch{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Company:  input.Company,
		Position: input.Position,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}

type DeleteInput struct {
	ID string `json:"id" jsonschema:"Record ID (required)"`
}

type DeleteOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *ContactHandlers) DeleteContact(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID, "id")
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	if _, err := h.deps.Repos.Contacts.Delete(ctx, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil, DeleteOutput{ID: id.String(), Message: "Contact deleted successfully"}, nil
}
