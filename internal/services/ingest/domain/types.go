// Package domain defines shared types for the csv ingest worker
package domain

import "time"

// FileSet names the csv exports to load; empty fields are skipped
type FileSet struct {
	Residents  string
	Categories string
	Complaints string
	StatusLogs string
}

// Empty reports whether the set names no files at all
func (f FileSet) Empty() bool {
	return f.Residents == "" && f.Categories == "" && f.Complaints == "" && f.StatusLogs == ""
}

// Resident is one normalized resident row bound for storage
type Resident struct {
	ID        int64
	FirstName string
	LastName  string
	Ward      int64
	Email     string
	Phone     string
}

// Category is one normalized category row bound for storage
type Category struct {
	ID   int64
	Name string
}

// Complaint is one normalized complaint row bound for storage
type Complaint struct {
	ID          int64
	ResidentID  int64
	CategoryID  int64
	Title       string
	Description string
	SubmittedAt time.Time
}

// StatusChange is one normalized status log row bound for storage.
// EventID carries the export's log id so re-imports stay idempotent
type StatusChange struct {
	EventID     int64
	ComplaintID int64
	Status      string
	OccurredAt  time.Time
}

// RowWarning records one skipped or suspect input row
type RowWarning struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason"`
}

// RunReport summarizes one ingest run
type RunReport struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Residents  int          `json:"residents"`
	Categories int          `json:"categories"`
	Complaints int          `json:"complaints"`
	Events     int          `json:"events"`
	Skipped    int          `json:"skipped"`
	Warnings   []RowWarning `json:"warnings,omitempty"`
}

// RunRow is the ingest_runs record persisted for every run
type RunRow struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string
	Residents  int
	Categories int
	Complaints int
	Events     int
	Skipped    int
	Note       string
}
