// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

// References between tables are plain TEXT columns without FOREIGN KEY
// constraints: deleting a referenced record leaves dangling ids that
// readers resolve as unknown.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	company TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);
CREATE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);

CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	domain TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);

CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	value INTEGER NOT NULL DEFAULT 0,
	stage TEXT NOT NULL,
	contact_id TEXT,
	probability INTEGER NOT NULL DEFAULT 0,
	expected_close_date DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals(stage);
CREATE INDEX IF NOT EXISTS idx_deals_contact_id ON deals(contact_id);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_date DATETIME NOT NULL,
	priority TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	contact_id TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_contact_id ON tasks(contact_id);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	contact_id TEXT,
	deal_id TEXT,
	description TEXT NOT NULL,
	date DATETIME NOT NULL,
	duration INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_date ON activities(date DESC);
CREATE INDEX IF NOT EXISTS idx_activities_contact_id ON activities(contact_id);
CREATE INDEX IF NOT EXISTS idx_activities_deal_id ON activities(deal_id);

CREATE TABLE IF NOT EXISTS quotes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	company_id TEXT,
	contact_id TEXT,
	deal_id TEXT,
	delivery_method TEXT NOT NULL DEFAULT '',
	quote_date DATETIME NOT NULL,
	expires_on DATETIME,
	billing_name_to TEXT NOT NULL DEFAULT '',
	billing_street TEXT NOT NULL DEFAULT '',
	billing_city TEXT NOT NULL DEFAULT '',
	billing_state TEXT NOT NULL DEFAULT '',
	billing_country TEXT NOT NULL DEFAULT '',
	billing_pincode TEXT NOT NULL DEFAULT '',
	shipping_name_to TEXT NOT NULL DEFAULT '',
	shipping_street TEXT NOT NULL DEFAULT '',
	shipping_city TEXT NOT NULL DEFAULT '',
	shipping_state TEXT NOT NULL DEFAULT '',
	shipping_country TEXT NOT NULL DEFAULT '',
	shipping_pincode TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotes_name ON quotes(name);
CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes(status);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
