// ABOUTME: Task CLI commands
// ABOUTME: Add, complete and delete follow-up tasks
package cli

import (
	"fmt"

	"github.com/harperreed/crmview/models"
)

// AddTaskCommand adds a task, optionally tied to a contact.
func AddTaskCommand(app *App, args []string) error {
	fs := newFlagSet(app, "add-task")
	title := fs.String("title", "", "Task title (required)")
	description := fs.String("description", "", "Details")
	due := fs.String("due", "", "Due date (YYYY-MM-DD, required)")
	priority := fs.String("priority", string(models.PriorityMedium), "Priority (low, medium, high)")
	contact := fs.String("contact", "", "Contact ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *due == "" {
		return fmt.Errorf("--due is required")
	}

	dueDate, err := parseDate(*due)
	if err != nil {
		return err
	}
	contactID, err := optionalID(*contact, "contact")
	if err != nil {
		return err
	}

	task, err := app.Repos.Tasks.Create(app.ctx(), models.Task{
		Title:       *title,
		Description: *description,
		DueDate:     dueDate,
		Priority:    models.Priority(*priority),
		ContactID:   contactID,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	app.printf("✓ Task created: %s (ID: %s)\n", task.Title, task.ID)
	app.printf("  Due: %s\n", task.DueDate.Format("2006-01-02"))
	app.printf("  Priority: %s\n", task.Priority)
	return nil
}

// CompleteTaskCommand toggles a task between completed and pending.
func CompleteTaskCommand(app *App, args []string) error {
	fs := newFlagSet(app, "complete-task")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "task")
	if err != nil {
		return err
	}

	task, err := app.Repos.ToggleComplete(app.ctx(), id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if task.Completed {
		app.printf("✓ Task completed: %s\n", task.Title)
	} else {
		app.printf("✓ Task reopened: %s\n", task.Title)
	}
	return nil
}

// DeleteTaskCommand deletes a task.
func DeleteTaskCommand(app *App, args []string) error {
	fs := newFlagSet(app, "delete-task")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "task")
	if err != nil {
		return err
	}

	if _, err := app.Repos.Tasks.Delete(app.ctx(), id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	app.printf("✓ Deleted task: %s\n", id)
	return nil
}
