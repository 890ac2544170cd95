package database

import (
	migrate "github.com/rubenv/sql-migrate"
)

// Migrations returns the history schema, embedded so that the binaries do
// not depend on a migrations directory at runtime.
func Migrations() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "0001_transcript_records",
				Up: []string{`
CREATE TABLE IF NOT EXISTS transcript_records (
    id UUID PRIMARY KEY,
    source_name VARCHAR(512) NOT NULL DEFAULT '',
    provider VARCHAR(32) NOT NULL DEFAULT '',
    model VARCHAR(128) NOT NULL DEFAULT '',
    response_format VARCHAR(32) NOT NULL DEFAULT '',
    language VARCHAR(20) NOT NULL DEFAULT '',
    degraded BOOLEAN NOT NULL DEFAULT FALSE,
    transcript JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
					`CREATE INDEX IF NOT EXISTS idx_transcript_records_created_at ON transcript_records (created_at DESC)`,
				},
				Down: []string{`DROP TABLE IF EXISTS transcript_records`},
			},
			{
				Id: "0002_summary_records",
				Up: []string{`
CREATE TABLE IF NOT EXISTS summary_records (
    id UUID PRIMARY KEY,
    text_hash VARCHAR(64) NOT NULL,
    model VARCHAR(128) NOT NULL DEFAULT '',
    temperature DOUBLE PRECISION NOT NULL DEFAULT 0,
    outcome VARCHAR(32) NOT NULL DEFAULT '',
    summary JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
					`CREATE INDEX IF NOT EXISTS idx_summary_records_text_hash ON summary_records (text_hash)`,
					`CREATE INDEX IF NOT EXISTS idx_summary_records_created_at ON summary_records (created_at DESC)`,
				},
				Down: []string{`DROP TABLE IF EXISTS summary_records`},
			},
		},
	}
}
