// ABOUTME: Contacts page: searchable contact list and selected-contact details
// ABOUTME: Details fetch the contact's deals and activities in parallel
package pages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/view"
	"golang.org/x/sync/errgroup"
)

type ContactsCriteria struct {
	Search string
}

type ContactsView struct {
	Contacts []models.Contact
	Total    int
}

func Contacts() view.Page[ContactsCriteria, ContactsView] {
	return view.Page[ContactsCriteria, ContactsView]{
		Name:      "contacts",
		LoadError: "Failed to load contacts",
		Requires:  []view.Collection{view.Contacts},
		Derive: func(cols view.Collections, c ContactsCriteria, _ time.Time) ContactsView {
			contacts := filter.Apply(cols.Contacts, filter.Text(c.Search,
				func(c models.Contact) string { return c.Name },
				func(c models.Contact) string { return c.Email },
				func(c models.Contact) string { return c.Company },
			))
			return ContactsView{Contacts: contacts, Total: len(cols.Contacts)}
		},
	}
}

// ContactDetail is the side panel for one selected contact.
type ContactDetail struct {
	Contact    models.Contact
	Deals      []models.Deal
	Activities []models.Activity
}

// LoadContactDetail fetches a contact with its deals and activities. A
// contact without deals yields an empty, non-nil list.
func LoadContactDetail(ctx context.Context, repos *repository.Set, id uuid.UUID) (ContactDetail, error) {
	var d ContactDetail
	var g errgroup.Group

	g.Go(func() error {
		c, err := repos.Contacts.Get(ctx, id)
		d.Contact = c
		return err
	})
	g.Go(func() error {
		deals, err := repos.DealsForContact(ctx, id)
		d.Deals = deals
		return err
	})
	g.Go(func() error {
		activities, err := repos.ActivitiesForContact(ctx, id)
		newestFirst(activities)
		d.Activities = activities
		return err
	})

	if err := g.Wait(); err != nil {
		return ContactDetail{}, err
	}
	return d, nil
}
