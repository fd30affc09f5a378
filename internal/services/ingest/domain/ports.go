package domain

import "context"

// RunnerPort drives the ingest worker
type RunnerPort interface {
	// EnsureSchema bootstraps the postgres tables, idempotent
	EnsureSchema(ctx context.Context) error
	// Run loads one file set inside a single transaction and records the run
	Run(ctx context.Context, files FileSet) (RunReport, error)
	// RefreshRollup recomputes the monthly rollup in clickhouse
	RefreshRollup(ctx context.Context) error
}

// StorageRepo is the persistence surface for ingest writes
type StorageRepo interface {
	EnsureSchema(ctx context.Context) error
	UpsertResidents(ctx context.Context, rows []Resident) (int, error)
	UpsertCategories(ctx context.Context, rows []Category) (int, error)
	UpsertComplaints(ctx context.Context, rows []Complaint) (int, error)
	UpsertEvents(ctx context.Context, rows []StatusChange) (int, error)
	RecordRun(ctx context.Context, run RunRow) error
}
