package lifecycle

import (
	"fmt"
	"time"
)

// Record is the derived lifecycle summary for one complaint. Turnaround
// carries the raw duration for aggregation; TurnaroundDays is the whole
// day rendering of the same measurement. HasResident and HasCategory
// report whether the reference rows were present in the snapshot; a
// record missing one is excluded only from groupings that need it
type Record struct {
	ComplaintID     int64         `json:"complaint_id"`
	ResidentID      int64         `json:"resident_id"`
	CategoryID      int64         `json:"category_id"`
	Ward            int64         `json:"ward"`
	Category        string        `json:"category"`
	Title           string        `json:"title"`
	SubmittedAt     time.Time     `json:"submitted_at"`
	Resolved        bool          `json:"resolved"`
	ResolvedAt      time.Time     `json:"resolved_at,omitzero"`
	Turnaround      time.Duration `json:"-"`
	TurnaroundValid bool          `json:"-"`
	TurnaroundDays  int           `json:"turnaround_days"`
	Status          string        `json:"status"`
	Resolutions     int           `json:"resolutions"`
	HasResident     bool          `json:"-"`
	HasCategory     bool          `json:"-"`
}

// Records derives one summary per complaint with at least one status
// event, in complaint id order, plus the warnings produced along the way.
// Complaints with no history are skipped with a missing_history warning.
// ErrEmptyResult when the snapshot had complaints but none were usable
func (a *Analyzer) Records() ([]Record, []Warning, error) {
	var (
		recs  []Record
		warns []Warning
	)
	for _, c := range a.complaints {
		rec, w, ok := a.record(c)
		warns = append(warns, w...)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}
	if len(a.complaints) > 0 && len(recs) == 0 {
		return nil, warns, ErrEmptyResult
	}
	return recs, warns, nil
}

// record derives the summary for one complaint. ok is false only when the
// complaint has no status history
func (a *Analyzer) record(c Complaint) (Record, []Warning, bool) {
	var warns []Warning
	evs := a.events[c.ID]
	if len(evs) == 0 {
		warns = append(warns, Warning{
			Code:        WarnMissingHistory,
			ComplaintID: c.ID,
			Detail:      "no status events",
		})
		return Record{}, warns, false
	}

	rec := Record{
		ComplaintID: c.ID,
		ResidentID:  c.ResidentID,
		CategoryID:  c.CategoryID,
		Title:       c.Title,
		SubmittedAt: evs[0].At,
		Status:      evs[len(evs)-1].Status,
	}
	if r, ok := a.residents[c.ResidentID]; ok {
		rec.Ward = r.Ward
		rec.HasResident = true
	} else {
		warns = append(warns, Warning{
			Code:        WarnUnknownReference,
			ComplaintID: c.ID,
			Detail:      fmt.Sprintf("resident %d not in snapshot", c.ResidentID),
		})
	}
	if cat, ok := a.categories[c.CategoryID]; ok {
		rec.Category = cat.Name
		rec.HasCategory = true
	} else {
		warns = append(warns, Warning{
			Code:        WarnUnknownReference,
			ComplaintID: c.ID,
			Detail:      fmt.Sprintf("category %d not in snapshot", c.CategoryID),
		})
	}

	resAt, n, _ := a.Resolution(c.ID)
	rec.Resolutions = n
	if n > 1 {
		warns = append(warns, Warning{
			Code:        WarnAmbiguousResolution,
			ComplaintID: c.ID,
			Detail:      fmt.Sprintf("%d resolved events, keeping earliest", n),
		})
	}
	if n > 0 {
		rec.Resolved = true
		rec.ResolvedAt = resAt
		if d := resAt.Sub(rec.SubmittedAt); d < 0 {
			warns = append(warns, Warning{
				Code:        WarnNegativeDuration,
				ComplaintID: c.ID,
				Detail: fmt.Sprintf("resolved %s before submission %s",
					resAt.Format(time.RFC3339), rec.SubmittedAt.Format(time.RFC3339)),
			})
		} else {
			rec.Turnaround = d
			rec.TurnaroundValid = true
			rec.TurnaroundDays = RoundDays(d)
		}
	}
	return rec, warns, true
}
