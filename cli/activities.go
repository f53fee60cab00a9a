// ABOUTME: Activity CLI commands
// ABOUTME: Log and delete calls, emails, meetings and notes
package cli

import (
	"fmt"

	"github.com/harperreed/crmview/models"
)

// LogActivityCommand records an interaction with a contact.
func LogActivityCommand(app *App, args []string) error {
	fs := newFlagSet(app, "log-activity")
	kind := fs.String("type", string(models.ActivityCall), "Type (call, email, meeting, note)")
	contact := fs.String("contact", "", "Contact ID (required)")
	deal := fs.String("deal", "", "Deal ID")
	description := fs.String("description", "", "What happened (required)")
	date := fs.String("date", "", "When (YYYY-MM-DD, default now)")
	duration := fs.Int("duration", 0, "Duration in minutes (calls and meetings)")
	tags := fs.String("tags", "", "Comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *contact == "" {
		return fmt.Errorf("--contact is required")
	}
	if *description == "" {
		return fmt.Errorf("--description is required")
	}

	contactID, err := optionalID(*contact, "contact")
	if err != nil {
		return err
	}
	dealID, err := optionalID(*deal, "deal")
	if err != nil {
		return err
	}

	activity := models.Activity{
		Type:        models.ActivityType(*kind),
		ContactID:   contactID,
		DealID:      dealID,
		Description: *description,
		Duration:    *duration,
		Tags:        splitTags(*tags),
	}
	if *date != "" {
		if activity.Date, err = parseDate(*date); err != nil {
			return err
		}
	}

	activity, err = app.Repos.Activities.Create(app.ctx(), activity)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	app.printf("✓ Activity logged: %s %s (ID: %s)\n", activity.Type, activity.Description, activity.ID)
	if activity.Duration > 0 {
		app.printf("  Duration: %d min\n", activity.Duration)
	}
	return nil
}

// DeleteActivityCommand deletes an activity.
func DeleteActivityCommand(app *App, args []string) error {
	fs := newFlagSet(app, "delete-activity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "activity")
	if err != nil {
		return err
	}

	if _, err := app.Repos.Activities.Delete(app.ctx(), id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	app.printf("✓ Deleted activity: %s\n", id)
	return nil
}
