package lifecycle

import (
	"fmt"
	"sort"
	"time"
)

// Mix is the status breakdown for one group, or for the whole snapshot
// when Key is empty. Rate is the resolved share as a percentage, two
// decimals. Other collects statuses outside the canonical three
type Mix struct {
	Key        string  `json:"key,omitempty"`
	Total      int     `json:"total"`
	Submitted  int     `json:"submitted"`
	InProgress int     `json:"in_progress"`
	Resolved   int     `json:"resolved"`
	Other      int     `json:"other,omitempty"`
	Rate       float64 `json:"resolution_rate"`
}

func (m *Mix) add(status string) {
	m.Total++
	switch status {
	case StatusSubmitted:
		m.Submitted++
	case StatusInProgress:
		m.InProgress++
	case StatusResolved:
		m.Resolved++
	default:
		m.Other++
	}
}

func (m *Mix) finish() {
	if m.Total > 0 {
		m.Rate = round2(float64(m.Resolved) * 100 / float64(m.Total))
	}
}

// StatusMix tallies complaints by their status as of asOf (zero = latest
// known event per complaint). Complaints whose history starts after asOf
// are not yet submitted then and stay out of the tally. ErrEmptyResult
// when the snapshot had complaints and none had history
func (a *Analyzer) StatusMix(asOf time.Time) (Mix, []Warning, error) {
	var (
		m     Mix
		warns []Warning
	)
	usable := 0
	for _, c := range a.complaints {
		if len(a.events[c.ID]) == 0 {
			warns = append(warns, Warning{
				Code:        WarnMissingHistory,
				ComplaintID: c.ID,
				Detail:      "no status events",
			})
			continue
		}
		usable++
		st, err := a.StatusAt(c.ID, asOf)
		if err != nil {
			continue
		}
		m.add(st)
	}
	if len(a.complaints) > 0 && usable == 0 {
		return Mix{}, warns, ErrEmptyResult
	}
	m.finish()
	return m, warns, nil
}

// StatusMixBy tallies complaints by status along a dimension, one Mix per
// group, sorted by total descending with ties ascending by key. Grouping
// and exclusion rules match GroupAndAggregate
func (a *Analyzer) StatusMixBy(dim Dimension, asOf time.Time) ([]Mix, []Warning, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, nil, err
	}
	mixes := make(map[string]*Mix)
	var warns []Warning
	usable := 0
	for _, c := range a.complaints {
		rec, w, ok := a.record(c)
		warns = append(warns, w...)
		if !ok {
			continue
		}
		usable++
		st, err := a.StatusAt(c.ID, asOf)
		if err != nil {
			continue
		}
		key, ok := groupKey(rec, dim)
		if !ok {
			continue
		}
		m := mixes[key]
		if m == nil {
			m = &Mix{Key: key}
			mixes[key] = m
		}
		m.add(st)
	}
	if len(a.complaints) > 0 && usable == 0 {
		return nil, warns, ErrEmptyResult
	}

	rows := make([]Mix, 0, len(mixes))
	for _, m := range mixes {
		m.finish()
		rows = append(rows, *m)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return keyLess(rows[i].Key, rows[j].Key)
	})
	return rows, warns, nil
}

// OpenAge is one active complaint with its age as of the report time.
// Age measures from the submission date recorded at intake; DaysOld is
// the whole day truncation of the same measurement
type OpenAge struct {
	ComplaintID int64         `json:"complaint_id"`
	ResidentID  int64         `json:"resident_id"`
	Ward        int64         `json:"ward"`
	Category    string        `json:"category"`
	Title       string        `json:"title"`
	Status      string        `json:"status"`
	SubmittedAt time.Time     `json:"submitted_at"`
	Age         time.Duration `json:"-"`
	DaysOld     int           `json:"days_old"`
}

// OpenAges lists complaints whose latest known status is not Resolved,
// aged from the recorded submission date to asOf (zero = the latest event
// timestamp in the snapshot). A submission date after the effective as-of
// is a negative_duration warning and the row is excluded. Rows with
// dangling references stay listed, with the reference fields zeroed and a
// warning. Sorted oldest first, ties by complaint id
func (a *Analyzer) OpenAges(asOf time.Time) ([]OpenAge, []Warning, error) {
	end := asOf
	if end.IsZero() {
		end = a.latest
	}
	var (
		out   []OpenAge
		warns []Warning
	)
	usable := 0
	for _, c := range a.complaints {
		evs := a.events[c.ID]
		if len(evs) == 0 {
			warns = append(warns, Warning{
				Code:        WarnMissingHistory,
				ComplaintID: c.ID,
				Detail:      "no status events",
			})
			continue
		}
		usable++
		if evs[len(evs)-1].Status == StatusResolved {
			continue
		}
		age := end.Sub(c.SubmittedAt)
		if age < 0 {
			warns = append(warns, Warning{
				Code:        WarnNegativeDuration,
				ComplaintID: c.ID,
				Detail: fmt.Sprintf("submitted %s after report time %s",
					c.SubmittedAt.Format(time.RFC3339), end.Format(time.RFC3339)),
			})
			continue
		}
		row := OpenAge{
			ComplaintID: c.ID,
			ResidentID:  c.ResidentID,
			Title:       c.Title,
			Status:      evs[len(evs)-1].Status,
			SubmittedAt: c.SubmittedAt,
			Age:         age,
			DaysOld:     int(age / (24 * time.Hour)),
		}
		if r, ok := a.residents[c.ResidentID]; ok {
			row.Ward = r.Ward
		} else {
			warns = append(warns, Warning{
				Code:        WarnUnknownReference,
				ComplaintID: c.ID,
				Detail:      fmt.Sprintf("resident %d not in snapshot", c.ResidentID),
			})
		}
		if cat, ok := a.categories[c.CategoryID]; ok {
			row.Category = cat.Name
		} else {
			warns = append(warns, Warning{
				Code:        WarnUnknownReference,
				ComplaintID: c.ID,
				Detail:      fmt.Sprintf("category %d not in snapshot", c.CategoryID),
			})
		}
		out = append(out, row)
	}
	if len(a.complaints) > 0 && usable == 0 {
		return nil, warns, ErrEmptyResult
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Age != out[j].Age {
			return out[i].Age > out[j].Age
		}
		return out[i].ComplaintID < out[j].ComplaintID
	})
	return out, warns, nil
}
