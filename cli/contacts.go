// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/view"
)

// AddContactCommand adds a new contact.
func AddContactCommand(app *App, args []string) error {
	fs := newFlagSet(app, "add-contact")
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Job title")
	notes := fs.String("notes", "", "Notes about the contact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	contact, err := app.Repos.Contacts.Create(app.ctx(), models.Contact{
		Name:     *name,
		Email:    *email,
		Phone:    *phone,
		Company:  *company,
		Position: *position,
		Notes:    *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	app.printf("✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	if contact.Email != "" {
		app.printf("  Email: %s\n", contact.Email)
	}
	if contact.Phone != "" {
		app.printf("  Phone: %s\n", contact.Phone)
	}
	if contact.Company != "" {
		app.printf("  Company: %s\n", contact.Company)
	}
	return nil
}

// ListContactsCommand lists contacts matching an optional search.
func ListContactsCommand(app *App, args []string) error {
	fs := newFlagSet(app, "list-contacts")
	query := fs.String("query", "", "Search by name, email or company")
	limit := fs.Int("limit", 50, "Maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	contacts, err := app.Repos.Contacts.All(app.ctx())
	if err != nil {
		return fmt.Errorf("failed to find contacts: %w", err)
	}

	v := pages.Contacts().Derive(view.Collections{Contacts: contacts}, pages.ContactsCriteria{Search: *query}, app.Now())
	if len(v.Contacts) == 0 {
		app.printf("No contacts found\n")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tPHONE\tCOMPANY\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t-------\t--")
	for i, contact := range v.Contacts {
		if *limit > 0 && i >= *limit {
			break
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			contact.Name, orDash(contact.Email), orDash(contact.Phone), orDash(contact.Company), shortID(contact.ID))
	}
	_ = w.Flush()

	app.printf("\nTotal: %d contact(s)\n", len(v.Contacts))
	return nil
}

// UpdateContactCommand updates the fields passed as flags.
func UpdateContactCommand(app *App, args []string) error {
	fs := newFlagSet(app, "update-contact")
	name := fs.String("name", "", "Contact name")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Job title")
	notes := fs.String("notes", "", "Notes about the contact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "contact")
	if err != nil {
		return err
	}

	set := setFlags(fs)
	var patch models.ContactPatch
	if set["name"] {
		patch.Name = name
	}
	if set["email"] {
		patch.Email = email
	}
	if set["phone"] {
		patch.Phone = phone
	}
	if set["company"] {
		patch.Company = company
	}
	if set["position"] {
		patch.Position = position
	}
	if set["notes"] {
		patch.Notes = notes
	}

	contact, err := app.Repos.Contacts.Update(app.ctx(), id, patch)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	app.printf("✓ Contact updated: %s (ID: %s)\n", contact.Name, contact.ID)
	return nil
}

// DeleteContactCommand deletes a contact. Deals and activities that point
// at it keep their reference and show as unknown.
func DeleteContactCommand(app *App, args []string) error {
	fs := newFlagSet(app, "delete-contact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "contact")
	if err != nil {
		return err
	}

	contact, err := app.Repos.Contacts.Delete(app.ctx(), id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	app.printf("✓ Contact deleted: %s (%s)\n", contact.Name, id)
	return nil
}
