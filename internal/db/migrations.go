package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'quote_status') THEN
			CREATE TYPE quote_status AS ENUM ('new', 'contacted', 'quoted', 'closed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS contact_submissions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(320) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		company VARCHAR(255),
		service_type VARCHAR(32) NOT NULL,
		service_level VARCHAR(128),
		service_specification VARCHAR(128),
		urgency VARCHAR(16) NOT NULL,
		project_description TEXT,
		consent_marketing SMALLINT NOT NULL DEFAULT 0,
		status quote_status NOT NULL DEFAULT 'new',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'contact_submissions' AND column_name = 'service_specification') THEN
			ALTER TABLE contact_submissions ADD COLUMN service_specification VARCHAR(128);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'contact_submissions' AND column_name = 'updated_at') THEN
			ALTER TABLE contact_submissions ADD COLUMN updated_at TIMESTAMPTZ;
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_contact_submissions_created_at ON contact_submissions (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_contact_submissions_status ON contact_submissions (status);`,
	`CREATE INDEX IF NOT EXISTS idx_contact_submissions_service_type ON contact_submissions (service_type);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
