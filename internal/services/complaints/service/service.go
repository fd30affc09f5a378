// Package service contains complaint listing and timeline workflows
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/core/lifecycle"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/repo"
)

// Service defines the complaints service contract
type Service interface {
	domain.ServicePort
	domain.SnapshotPort
}

// Svc implements the complaints service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a complaints service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("complaints.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("complaints.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Get returns one complaint with its derived lifecycle fields
func (s *Svc) Get(ctx context.Context, id int64) (domain.Detail, error) {
	var (
		det *repo.DetailRow
		evs []repo.EventRow
	)
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		if det, err = r.Detail(ctx, id); err != nil {
			return err
		}
		evs, err = r.Events(ctx, id)
		return err
	})
	if err != nil {
		return domain.Detail{}, err
	}

	out := domain.Detail{
		ComplaintID: det.ID,
		Title:       det.Title,
		Description: det.Description,
		Category:    det.Category,
		CategoryID:  det.CategoryID,
		Ward:        det.Ward,
		ResidentID:  det.ResidentID,
		Resident:    det.Resident,
		SubmittedAt: det.SubmittedAt,
	}

	// derive status and turnaround the same way the reports do
	a := lifecycle.NewAnalyzer(lifecycle.Snapshot{
		Complaints: []lifecycle.Complaint{{
			ID:          det.ID,
			ResidentID:  det.ResidentID,
			CategoryID:  det.CategoryID,
			Title:       det.Title,
			SubmittedAt: det.SubmittedAt,
		}},
		Events: eventsToLifecycle(det.ID, evs),
	})
	if status, err := a.StatusAt(det.ID, time.Time{}); err == nil {
		out.Status = status
	}
	if at, n, err := a.Resolution(det.ID); err == nil && n > 0 {
		out.Resolved = true
		out.ResolvedAt = at
		if d, err := a.Turnaround(det.ID); err == nil {
			out.TurnaroundDays = lifecycle.RoundDays(d)
		}
	}
	return out, nil
}

// Timeline returns one complaint with its full ordered status history
func (s *Svc) Timeline(ctx context.Context, id int64) (domain.Timeline, error) {
	var (
		det *repo.DetailRow
		evs []repo.EventRow
	)
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		if det, err = r.Detail(ctx, id); err != nil {
			return err
		}
		evs, err = r.Events(ctx, id)
		return err
	})
	if err != nil {
		return domain.Timeline{}, err
	}

	out := domain.Timeline{
		ComplaintID: det.ID,
		Title:       det.Title,
		Description: det.Description,
		Category:    det.Category,
		Resident:    det.Resident,
		SubmittedAt: det.SubmittedAt,
		Events:      make([]domain.TimelineEvent, 0, len(evs)),
	}
	for _, ev := range evs {
		out.Events = append(out.Events, domain.TimelineEvent{
			EventID:    ev.EventID,
			Status:     ev.Status,
			OccurredAt: ev.OccurredAt,
		})
	}
	return out, nil
}

// List returns complaints matching the filters, newest submission first.
// Status classification follows the latest event rule, so complaints with
// no history never appear
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.ListRow, error) {
	var asOf time.Time
	if in.AsOf != "" {
		t, err := time.Parse("2006-01-02", in.AsOf)
		if err != nil {
			return nil, perr.InvalidArgf("invalid as_of %q", in.AsOf)
		}
		// include the whole day
		asOf = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	snap, names, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	a := lifecycle.NewAnalyzer(snap)

	cats := make(map[int64]string, len(snap.Categories))
	for _, c := range snap.Categories {
		cats[c.ID] = c.Name
	}
	wards := make(map[int64]int64, len(snap.Residents))
	for _, r := range snap.Residents {
		wards[r.ID] = r.Ward
	}

	var out []domain.ListRow
	for _, c := range snap.Complaints {
		status, err := a.StatusAt(c.ID, asOf)
		if err != nil {
			if errors.Is(err, lifecycle.ErrMissingHistory) {
				continue
			}
			return nil, err
		}
		row := domain.ListRow{
			ComplaintID: c.ID,
			Title:       c.Title,
			Category:    cats[c.CategoryID],
			CategoryID:  c.CategoryID,
			Ward:        wards[c.ResidentID],
			ResidentID:  c.ResidentID,
			Resident:    names[c.ResidentID],
			Status:      status,
			SubmittedAt: c.SubmittedAt,
		}
		if !matches(row, in) {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.After(out[j].SubmittedAt)
		}
		return out[i].ComplaintID > out[j].ComplaintID
	})
	if in.Limit > 0 && len(out) > in.Limit {
		out = out[:in.Limit]
	}
	return out, nil
}

// Snapshot loads the full analyzer input in one scoped read
func (s *Svc) Snapshot(ctx context.Context) (lifecycle.Snapshot, error) {
	snap, _, err := s.load(ctx)
	return snap, err
}

// load reads all four tables inside one transaction so the analyzer sees a
// consistent view, and keeps resident display names for listings
func (s *Svc) load(ctx context.Context) (lifecycle.Snapshot, map[int64]string, error) {
	var (
		snap  lifecycle.Snapshot
		names map[int64]string
	)
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		residents, err := r.Residents(ctx)
		if err != nil {
			return err
		}
		categories, err := r.Categories(ctx)
		if err != nil {
			return err
		}
		complaints, err := r.Complaints(ctx)
		if err != nil {
			return err
		}
		events, err := r.StatusEvents(ctx)
		if err != nil {
			return err
		}

		names = make(map[int64]string, len(residents))
		snap.Residents = make([]lifecycle.Resident, 0, len(residents))
		for _, row := range residents {
			snap.Residents = append(snap.Residents, lifecycle.Resident{ID: row.ID, Ward: row.Ward})
			names[row.ID] = displayName(row.FirstName, row.LastName)
		}
		snap.Categories = make([]lifecycle.Category, 0, len(categories))
		for _, row := range categories {
			snap.Categories = append(snap.Categories, lifecycle.Category{ID: row.ID, Name: row.Name})
		}
		snap.Complaints = make([]lifecycle.Complaint, 0, len(complaints))
		for _, row := range complaints {
			snap.Complaints = append(snap.Complaints, lifecycle.Complaint{
				ID:          row.ID,
				ResidentID:  row.ResidentID,
				CategoryID:  row.CategoryID,
				Title:       row.Title,
				SubmittedAt: row.SubmittedAt,
			})
		}
		snap.Events = make([]lifecycle.StatusEvent, 0, len(events))
		for _, row := range events {
			snap.Events = append(snap.Events, lifecycle.StatusEvent{
				Seq:         row.EventID,
				ComplaintID: row.ComplaintID,
				Status:      row.Status,
				At:          row.OccurredAt,
			})
		}
		return nil
	})
	if err != nil {
		return lifecycle.Snapshot{}, nil, err
	}
	return snap, names, nil
}

// matches applies the AND of all set filters
func matches(row domain.ListRow, in domain.ListInput) bool {
	if in.Ward != nil && row.Ward != *in.Ward {
		return false
	}
	if in.CategoryID != nil && row.CategoryID != *in.CategoryID {
		return false
	}
	if in.ResidentID != nil && row.ResidentID != *in.ResidentID {
		return false
	}
	if in.Status != "" && row.Status != in.Status {
		return false
	}
	if in.ActiveOnly && row.Status == lifecycle.StatusResolved {
		return false
	}
	return true
}

func displayName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

func eventsToLifecycle(id int64, evs []repo.EventRow) []lifecycle.StatusEvent {
	out := make([]lifecycle.StatusEvent, 0, len(evs))
	for _, ev := range evs {
		out = append(out, lifecycle.StatusEvent{
			Seq:         ev.EventID,
			ComplaintID: id,
			Status:      ev.Status,
			At:          ev.OccurredAt,
		})
	}
	return out
}
