// ABOUTME: Task table mapping
// ABOUTME: Tasks list by due date ascending
package db

import (
	"database/sql"

	"github.com/harperreed/crmview/models"
)

// NewTaskStore returns the SQLite task store.
func NewTaskStore(db *sql.DB) *Store[models.Task] {
	return &Store[models.Task]{db: db, t: table[models.Task]{
		kind:    models.TaskKind,
		name:    "tasks",
		columns: []string{"id", "title", "description", "due_date", "priority", "completed", "contact_id", "created_at", "updated_at"},
		values: func(t models.Task) ([]any, error) {
			return []any{
				t.ID.String(), t.Title, t.Description, t.DueDate, string(t.Priority),
				t.Completed, refValue(t.ContactID), t.CreatedAt, t.UpdatedAt,
			}, nil
		},
		scan: func(row scanner) (models.Task, error) {
			var t models.Task
			var contactID sql.NullString
			err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Completed, &contactID, &t.CreatedAt, &t.UpdatedAt)
			if err != nil {
				return t, err
			}
			t.ContactID = refFrom(contactID)
			return t, nil
		},
		order:  "due_date ASC, id",
		search: []string{"title", "description"},
		sortable: map[string]string{
			"title":    "title",
			"due_date": "due_date",
			"priority": "priority",
		},
	}}
}
