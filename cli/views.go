// ABOUTME: Page view CLI commands
// ABOUTME: Loads a page through its coordinator and prints the derived view
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/crmview/datewindow"
	"github.com/harperreed/crmview/models"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/view"
	"github.com/harperreed/crmview/viz"
)

// load runs one page session to Ready and returns its view.
func load[C, V any](app *App, page view.Page[C, V], criteria C) (V, error) {
	c := view.New(page, app.Repos, criteria, view.WithLogger(app.Logger), view.WithClock(app.Now))
	if err := c.Reload(app.ctx()); err != nil {
		var zero V
		return zero, fmt.Errorf("%s: %w", c.Current().Message, err)
	}
	return c.Current().View, nil
}

// ViewDashboardCommand prints pipeline totals, upcoming tasks and recent activity.
func ViewDashboardCommand(app *App, args []string) error {
	fs := newFlagSet(app, "view dashboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := load(app, pages.Dashboard(app.Labels), struct{}{})
	if err != nil {
		return err
	}
	app.printf("%s", viz.RenderDashboard(v))
	return nil
}

// ViewPipelineCommand prints deals grouped by stage.
func ViewPipelineCommand(app *App, args []string) error {
	fs := newFlagSet(app, "view pipeline")
	search := fs.String("search", "", "Filter by deal title or contact name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := load(app, pages.Deals(app.Labels), pages.DealsCriteria{Search: *search})
	if err != nil {
		return err
	}

	for _, col := range v.Columns {
		app.printf("%s (%d, %s)\n", col.Stage, col.Count, formatMoney(col.Value))
		for _, card := range col.Cards {
			closing := ""
			if card.Close != nil {
				closing = "  closes " + card.Close.Text
			}
			app.printf("  • %s  %s  %s%s  [%s]\n",
				card.Deal.Title, formatMoney(card.Deal.Value), card.Contact, closing, shortID(card.Deal.ID))
		}
	}
	app.printf("\nTotal: %d deal(s), %s\n", v.Count, formatMoney(v.Value))
	return nil
}

// ViewTasksCommand prints tasks with status counts.
func ViewTasksCommand(app *App, args []string) error {
	fs := newFlagSet(app, "view tasks")
	search := fs.String("search", "", "Filter by title or description")
	status := fs.String("status", pages.All, "Status (all, completed, pending, overdue)")
	priority := fs.String("priority", pages.All, "Priority (all, low, medium, high)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	criteria := pages.TasksCriteria{
		Search:   *search,
		Status:   pages.TaskStatus(*status),
		Priority: models.Priority(*priority),
	}
	v, err := load(app, pages.Tasks(app.Labels), criteria)
	if err != nil {
		return err
	}

	app.printf("%d total  %d pending  %d completed  %d overdue\n\n", v.Total, v.Pending, v.Completed, v.Overdue)
	if len(v.Rows) == 0 {
		app.printf("No tasks found\n")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DONE\tTITLE\tPRIORITY\tDUE\tCONTACT\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t--------\t---\t-------\t--")
	for _, row := range v.Rows {
		done := " "
		if row.Task.Completed {
			done = "✓"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			done, row.Task.Title, models.NormalizePriority(row.Task.Priority), row.Due.Text, row.Contact, shortID(row.Task.ID))
	}
	return w.Flush()
}

// ViewActivitiesCommand prints the activity timeline.
func ViewActivitiesCommand(app *App, args []string) error {
	fs := newFlagSet(app, "view activities")
	search := fs.String("search", "", "Filter by description or contact")
	kind := fs.String("type", pages.All, "Type (all, call, email, meeting, note)")
	date := fs.String("date", string(datewindow.All), "Window (all, today, yesterday, thisWeek, lastWeek)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	criteria := pages.ActivitiesCriteria{
		Search: *search,
		Type:   models.ActivityType(*kind),
		Date:   datewindow.Token(*date),
	}
	v, err := load(app, pages.Activities(app.Labels), criteria)
	if err != nil {
		return err
	}

	app.printf("%d total  %d calls  %d emails  %d meetings\n\n", v.Total, v.Calls, v.Emails, v.Meetings)
	if len(v.Rows) == 0 {
		app.printf("No activities found\n")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tTYPE\tDESCRIPTION\tCONTACT\tDEAL")
	_, _ = fmt.Fprintln(w, "----\t----\t-----------\t-------\t----")
	for _, row := range v.Rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Activity.Date.Format("2006-01-02"), models.NormalizeActivityType(row.Activity.Type),
			row.Activity.Description, row.Contact, orDash(row.Deal))
	}
	return w.Flush()
}

// ViewQuotesCommand prints one server-side page of quotes.
func ViewQuotesCommand(app *App, args []string) error {
	fs := newFlagSet(app, "view quotes")
	search := fs.String("search", "", "Filter by quote name")
	sortBy := fs.String("sort", "name", "Sort by (name, status, quote_date, expires_on, created_at)")
	desc := fs.Bool("desc", false, "Sort descending")
	page := fs.Int("page", 1, "Page number")
	limit := fs.Int("limit", app.PageSize, "Quotes per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	criteria := pages.QuotesCriteria{
		Search: *search,
		SortBy: *sortBy,
		Desc:   *desc,
		Page:   *page - 1,
		Limit:  *limit,
	}
	v, err := load(app, pages.Quotes(app.Labels, app.PageSize), criteria)
	if err != nil {
		return err
	}

	if len(v.Rows) == 0 {
		app.printf("No quotes found\n")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tCOMPANY\tCONTACT\tDEAL\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-------\t-------\t----\t--")
	for _, row := range v.Rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Quote.Name, row.Status, orDash(row.Company), row.Contact, orDash(row.Deal), shortID(row.Quote.ID))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	app.printf("\nPage %d of %d (%d quote(s))\n", v.Page+1, max(v.Pages, 1), v.Total)
	return nil
}

// ShowContactCommand prints a contact with its deals and activities.
func ShowContactCommand(app *App, args []string) error {
	fs := newFlagSet(app, "show-contact")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "contact")
	if err != nil {
		return err
	}

	d, err := pages.LoadContactDetail(app.ctx(), app.Repos, id)
	if err != nil {
		return fmt.Errorf("%s: %w", view.Describe(err, "Failed to load contact"), err)
	}

	app.printf("%s\n", d.Contact.Name)
	app.printf("  Email:    %s\n", orDash(d.Contact.Email))
	app.printf("  Phone:    %s\n", orDash(d.Contact.Phone))
	app.printf("  Company:  %s\n", orDash(d.Contact.Company))
	app.printf("  Position: %s\n", orDash(d.Contact.Position))

	app.printf("\nDeals (%d)\n", len(d.Deals))
	for _, deal := range d.Deals {
		app.printf("  • %s  %s  %s\n", deal.Title, models.NormalizeStage(deal.Stage), formatMoney(deal.Value))
	}

	app.printf("\nActivities (%d)\n", len(d.Activities))
	for _, a := range d.Activities {
		app.printf("  %s  %-8s %s\n", a.Date.Format("2006-01-02"), models.NormalizeActivityType(a.Type), a.Description)
	}
	return nil
}
