// Package repo provides postgres access for directory reference data
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
)

// Repo is the minimal persistence surface for directory lookups
type Repo interface {
	Resident(ctx context.Context, id int64) (*ResidentRow, error)
	Residents(ctx context.Context) ([]ResidentRow, error)
	Categories(ctx context.Context) ([]CategoryRow, error)
	Wards(ctx context.Context) ([]WardRow, error)
}

// ResidentRow is a resident record as stored
type ResidentRow struct {
	ID        int64
	FirstName string
	LastName  string
	Ward      int64
	Email     string
	Phone     string
}

// CategoryRow is a service category record as stored
type CategoryRow struct {
	ID   int64
	Name string
}

// WardRow is a distinct ward with its resident count
type WardRow struct {
	Ward      int64
	Residents int64
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

func (r *queries) Resident(ctx context.Context, id int64) (*ResidentRow, error) {
	const sql = `
select resident_id, first_name, last_name, ward, coalesce(email,''), coalesce(phone,'')
from residents
where resident_id = $1
`
	var row ResidentRow
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&row.ID, &row.FirstName, &row.LastName, &row.Ward, &row.Email, &row.Phone,
	)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return nil, perr.NotFoundf("resident %d not found", id)
		}
		return nil, err
	}
	return &row, nil
}

func (r *queries) Residents(ctx context.Context) ([]ResidentRow, error) {
	const sql = `
select resident_id, first_name, last_name, ward, coalesce(email,''), coalesce(phone,'')
from residents
order by resident_id asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ResidentRow
	for rows.Next() {
		var rr ResidentRow
		if err := rows.Scan(&rr.ID, &rr.FirstName, &rr.LastName, &rr.Ward, &rr.Email, &rr.Phone); err != nil {
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
order by category_name asc, category_id asc
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

func (r *queries) Wards(ctx context.Context) ([]WardRow, error) {
	const sql = `
select ward, count(1) as residents
from residents
group by ward
order by ward asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WardRow
	for rows.Next() {
		var rr WardRow
		if err := rows.Scan(&rr.Ward, &rr.Residents); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
