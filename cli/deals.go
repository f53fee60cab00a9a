// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for managing deals and moving them between stages
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/resolve"
)

func stageNames() string {
	names := make([]string, len(models.Stages))
	for i, s := range models.Stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// AddDealCommand adds a new deal for a contact.
func AddDealCommand(app *App, args []string) error {
	fs := newFlagSet(app, "add-deal")
	title := fs.String("title", "", "Deal title (required)")
	contact := fs.String("contact", "", "Contact ID (required)")
	value := fs.Int64("value", 0, "Deal value in cents")
	stage := fs.String("stage", string(models.StageLead), "Stage ("+stageNames()+")")
	probability := fs.Int("probability", 0, "Win probability 0-100")
	closeDate := fs.String("close", "", "Expected close date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *contact == "" {
		return fmt.Errorf("--contact is required")
	}

	contactID, err := optionalID(*contact, "contact")
	if err != nil {
		return err
	}

	deal := models.Deal{
		Title:       *title,
		Value:       *value,
		Stage:       models.Stage(*stage),
		ContactID:   contactID,
		Probability: *probability,
	}
	if *closeDate != "" {
		t, err := parseDate(*closeDate)
		if err != nil {
			return err
		}
		deal.ExpectedCloseDate = &t
	}

	deal, err = app.Repos.Deals.Create(app.ctx(), deal)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	app.printf("✓ Deal created: %s (ID: %s)\n", deal.Title, deal.ID)
	app.printf("  Value: %s\n", formatMoney(deal.Value))
	app.printf("  Stage: %s\n", deal.Stage)
	return nil
}

// ListDealsCommand lists deals with their contact.
func ListDealsCommand(app *App, args []string) error {
	fs := newFlagSet(app, "list-deals")
	stage := fs.String("stage", "", "Filter by stage")
	query := fs.String("query", "", "Search by title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := app.Repos.Deals.All(app.ctx())
	if err != nil {
		return fmt.Errorf("failed to find deals: %w", err)
	}
	contacts, err := app.Repos.Contacts.All(app.ctx())
	if err != nil {
		return fmt.Errorf("failed to find contacts: %w", err)
	}

	var wantStage models.Stage
	if *stage != "" {
		wantStage = models.NormalizeStage(models.Stage(*stage))
	}
	deals := filter.Apply(all,
		filter.Text(*query, func(d models.Deal) string { return d.Title }),
		filter.Equals(wantStage, "", func(d models.Deal) models.Stage { return models.NormalizeStage(d.Stage) }),
	)

	if len(deals) == 0 {
		app.printf("No deals found\n")
		return nil
	}

	names := resolve.NewIndex(models.ContactKind, contacts, app.Labels)

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tCONTACT\tVALUE\tSTAGE\tID")
	_, _ = fmt.Fprintln(w, "-----\t-------\t-----\t-----\t--")

	var total int64
	for _, deal := range deals {
		contact := names.Name(deal.ContactID, func(c models.Contact) string { return c.Name })
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			deal.Title, orDash(contact), formatMoney(deal.Value), deal.Stage, shortID(deal.ID))
		total += deal.Value
	}
	_ = w.Flush()

	app.printf("\nTotal: %d deal(s) - %s\n", len(deals), formatMoney(total))
	return nil
}

// UpdateDealCommand updates the fields passed as flags. --stage goes
// through the stage check and rejects anything outside the pipeline.
func UpdateDealCommand(app *App, args []string) error {
	fs := newFlagSet(app, "update-deal")
	title := fs.String("title", "", "Deal title")
	value := fs.Int64("value", 0, "Deal value in cents")
	stage := fs.String("stage", "", "Stage ("+stageNames()+")")
	probability := fs.Int("probability", 0, "Win probability 0-100")
	closeDate := fs.String("close", "", "Expected close date (YYYY-MM-DD, or 'none' to clear)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "deal")
	if err != nil {
		return err
	}

	set := setFlags(fs)
	if set["stage"] {
		if _, err := app.Repos.UpdateStage(app.ctx(), id, models.Stage(*stage)); err != nil {
			return fmt.Errorf("failed to update deal stage: %w", err)
		}
	}

	var patch models.DealPatch
	if set["title"] {
		patch.Title = title
	}
	if set["value"] {
		patch.Value = value
	}
	if set["probability"] {
		patch.Probability = probability
	}
	if set["close"] {
		if *closeDate == "none" {
			patch.ClearExpectedClose = true
		} else {
			t, err := parseDate(*closeDate)
			if err != nil {
				return err
			}
			patch.ExpectedCloseDate = &t
		}
	}

	deal, err := app.Repos.Deals.Update(app.ctx(), id, patch)
	if err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}

	app.printf("✓ Deal updated: %s (ID: %s)\n", deal.Title, deal.ID)
	app.printf("  Stage: %s\n", deal.Stage)
	return nil
}

// DeleteDealCommand deletes a deal.
func DeleteDealCommand(app *App, args []string) error {
	fs := newFlagSet(app, "delete-deal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "deal")
	if err != nil {
		return err
	}

	if _, err := app.Repos.Deals.Delete(app.ctx(), id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}

	app.printf("✓ Deleted deal: %s\n", id)
	return nil
}
