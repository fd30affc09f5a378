// Package repo provides postgres access for complaints and status history
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
)

// Repo is the minimal persistence surface for complaints
// snapshot methods return whole tables so the analyzer sees one consistent view
type Repo interface {
	Residents(ctx context.Context) ([]ResidentRow, error)
	Categories(ctx context.Context) ([]CategoryRow, error)
	Complaints(ctx context.Context) ([]ComplaintRow, error)
	StatusEvents(ctx context.Context) ([]StatusEventRow, error)

	Detail(ctx context.Context, id int64) (*DetailRow, error)
	Events(ctx context.Context, id int64) ([]EventRow, error)
}

// ResidentRow is a resident as stored
type ResidentRow struct {
	ID        int64
	FirstName string
	LastName  string
	Ward      int64
}

// CategoryRow is a service category as stored
type CategoryRow struct {
	ID   int64
	Name string
}

// ComplaintRow is a complaint as stored
type ComplaintRow struct {
	ID          int64
	ResidentID  int64
	CategoryID  int64
	Title       string
	SubmittedAt time.Time
}

// StatusEventRow is one append-only status change as stored
type StatusEventRow struct {
	EventID     int64
	ComplaintID int64
	Status      string
	OccurredAt  time.Time
}

// DetailRow is a complaint joined to its resident and category
type DetailRow struct {
	ID          int64
	Title       string
	Description string
	ResidentID  int64
	Resident    string
	Ward        int64
	CategoryID  int64
	Category    string
	SubmittedAt time.Time
}

// EventRow is one timeline entry for a single complaint
type EventRow struct {
	EventID    int64
	Status     string
	OccurredAt time.Time
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Residents(ctx context.Context) ([]ResidentRow, error) {
	const sql = `
select resident_id, first_name, last_name, ward
from residents
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ResidentRow
	for rows.Next() {
		var rr ResidentRow
		if err := rows.Scan(&rr.ID, &rr.FirstName, &rr.LastName, &rr.Ward); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Categories(ctx context.Context) ([]CategoryRow, error) {
	const sql = `
select category_id, category_name
from service_categories
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryRow
	for rows.Next() {
		var rr CategoryRow
		if err := rows.Scan(&rr.ID, &rr.Name); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Complaints(ctx context.Context) ([]ComplaintRow, error) {
	const sql = `
select complaint_id, resident_id, category_id, title, submitted_at
from complaints
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ComplaintRow
	for rows.Next() {
		var rr ComplaintRow
		if err := rows.Scan(&rr.ID, &rr.ResidentID, &rr.CategoryID, &rr.Title, &rr.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) StatusEvents(ctx context.Context) ([]StatusEventRow, error) {
	// event_id is the insertion order tie break, keep it as seq
	const sql = `
select event_id, complaint_id, status, occurred_at
from status_events
order by event_id asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StatusEventRow
	for rows.Next() {
		var rr StatusEventRow
		if err := rows.Scan(&rr.EventID, &rr.ComplaintID, &rr.Status, &rr.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Detail(ctx context.Context, id int64) (*DetailRow, error) {
	// left joins keep complaints with dangling references visible
	const sql = `
select
  c.complaint_id,
  c.title,
  coalesce(c.description, ''),
  c.resident_id,
  coalesce(trim(concat(r.first_name, ' ', r.last_name)), ''),
  coalesce(r.ward, 0),
  c.category_id,
  coalesce(sc.category_name, ''),
  c.submitted_at
from complaints c
left join residents r on r.resident_id = c.resident_id
left join service_categories sc on sc.category_id = c.category_id
where c.complaint_id = $1
`
	var row DetailRow
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&row.ID, &row.Title, &row.Description,
		&row.ResidentID, &row.Resident, &row.Ward,
		&row.CategoryID, &row.Category, &row.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return nil, perr.NotFoundf("complaint %d not found", id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *queries) Events(ctx context.Context, id int64) ([]EventRow, error) {
	const sql = `
select event_id, status, occurred_at
from status_events
where complaint_id = $1
order by occurred_at asc, event_id asc
`
	rows, err := r.q.Query(ctx, sql, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []EventRow
	for rows.Next() {
		var rr EventRow
		if err := rows.Scan(&rr.EventID, &rr.Status, &rr.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
