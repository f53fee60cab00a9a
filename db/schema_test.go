// ABOUTME: Tests for database schema creation
// ABOUTME: Uses in-memory SQLite for fast isolated tests
package db

import (
	"testing"
)

func TestInitSchema(t *testing.T) {
	db := setupTestDB(t)

	for _, tbl := range []string{"contacts", "companies", "deals", "tasks", "activities", "quotes"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", tbl).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", tbl, err)
		}
	}

	indexes := []string{
		"idx_deals_stage",
		"idx_tasks_due_date",
		"idx_activities_date",
		"idx_quotes_name",
	}
	for _, idx := range indexes {
		var indexName string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&indexName)
		if err != nil {
			t.Errorf("Index %s not found: %v", idx, err)
		}
	}
}
