// Package repo provides postgres access for ingest writes
package repo

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	str "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/strings"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// schema is applied statement by statement so partial bootstraps recover
var schema = []string{
	`CREATE TABLE IF NOT EXISTS residents (
		resident_id BIGINT PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		ward        BIGINT NOT NULL DEFAULT 0,
		email       TEXT,
		phone       TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS service_categories (
		category_id   BIGINT PRIMARY KEY,
		category_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS complaints (
		complaint_id BIGINT PRIMARY KEY,
		resident_id  BIGINT NOT NULL,
		category_id  BIGINT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT,
		submitted_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS status_events (
		event_id     BIGSERIAL PRIMARY KEY,
		complaint_id BIGINT NOT NULL,
		status       TEXT NOT NULL,
		occurred_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS status_events_complaint_idx
		ON status_events (complaint_id, occurred_at, event_id)`,
	`CREATE TABLE IF NOT EXISTS ingest_runs (
		run_id      UUID PRIMARY KEY,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		source      TEXT NOT NULL,
		residents   INT NOT NULL DEFAULT 0,
		categories  INT NOT NULL DEFAULT 0,
		complaints  INT NOT NULL DEFAULT 0,
		events      INT NOT NULL DEFAULT 0,
		skipped     INT NOT NULL DEFAULT 0,
		note        TEXT
	)`,
}

// EnsureSchema bootstraps all tables, idempotent
func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// UpsertResidents writes resident rows keyed by resident_id
func (r *queries) UpsertResidents(ctx context.Context, rows []domain.Resident) (int, error) {
	const sql = `
		INSERT INTO residents (resident_id, first_name, last_name, ward, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (resident_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			ward       = EXCLUDED.ward,
			email      = EXCLUDED.email,
			phone      = EXCLUDED.phone
	`
	n := 0
	for _, row := range rows {
		if _, err := r.q.Exec(ctx, sql,
			row.ID, row.FirstName, row.LastName, row.Ward,
			str.SQLNull(row.Email), str.SQLNull(row.Phone),
		); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// UpsertCategories writes category rows keyed by category_id
func (r *queries) UpsertCategories(ctx context.Context, rows []domain.Category) (int, error) {
	const sql = `
		INSERT INTO service_categories (category_id, category_name)
		VALUES ($1, $2)
		ON CONFLICT (category_id) DO UPDATE SET
			category_name = EXCLUDED.category_name
	`
	n := 0
	for _, row := range rows {
		if _, err := r.q.Exec(ctx, sql, row.ID, row.Name); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// UpsertComplaints writes complaint rows keyed by complaint_id
func (r *queries) UpsertComplaints(ctx context.Context, rows []domain.Complaint) (int, error) {
	const sql = `
		INSERT INTO complaints (complaint_id, resident_id, category_id, title, description, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (complaint_id) DO UPDATE SET
			resident_id  = EXCLUDED.resident_id,
			category_id  = EXCLUDED.category_id,
			title        = EXCLUDED.title,
			description  = EXCLUDED.description,
			submitted_at = EXCLUDED.submitted_at
	`
	n := 0
	for _, row := range rows {
		if _, err := r.q.Exec(ctx, sql,
			row.ID, row.ResidentID, row.CategoryID, row.Title,
			str.SQLNull(row.Description), row.SubmittedAt,
		); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// UpsertEvents writes status log rows with their export ids so re-imports
// stay idempotent, then advances the serial past the highest imported id
func (r *queries) UpsertEvents(ctx context.Context, rows []domain.StatusChange) (int, error) {
	const sql = `
		INSERT INTO status_events (event_id, complaint_id, status, occurred_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO UPDATE SET
			complaint_id = EXCLUDED.complaint_id,
			status       = EXCLUDED.status,
			occurred_at  = EXCLUDED.occurred_at
	`
	n := 0
	for _, row := range rows {
		if _, err := r.q.Exec(ctx, sql,
			row.EventID, row.ComplaintID, row.Status, row.OccurredAt,
		); err != nil {
			return n, err
		}
		n++
	}
	if n > 0 {
		const bump = `
			SELECT setval(
				pg_get_serial_sequence('status_events', 'event_id'),
				(SELECT MAX(event_id) FROM status_events)
			)
		`
		if _, err := r.q.Exec(ctx, bump); err != nil {
			return n, err
		}
	}
	return n, nil
}

// RecordRun persists the ingest_runs row for this run
func (r *queries) RecordRun(ctx context.Context, run domain.RunRow) error {
	const sql = `
		INSERT INTO ingest_runs
			(run_id, started_at, finished_at, source, residents, categories, complaints, events, skipped, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.q.Exec(ctx, sql,
		run.RunID, run.StartedAt, run.FinishedAt, run.Source,
		run.Residents, run.Categories, run.Complaints, run.Events, run.Skipped, str.SQLNull(run.Note),
	)
	return err
}
