package lifecycle

import (
	"fmt"
	"sort"
	"time"
)

// DwellOptions controls open interval handling for dwell computations
type DwellOptions struct {
	// IncludeOpenInterval closes the final status period against AsOf
	// instead of dropping it. Off by default so analysis time noise never
	// leaks into historical averages
	IncludeOpenInterval bool
	// AsOf anchors the close of open intervals; zero means the latest
	// event timestamp in the snapshot, keeping results clock free
	AsOf time.Time
}

// Dwell is the time one complaint spent in one status before moving on.
// Open marks the synthesized final interval, closed against the as-of
// time rather than a successor event
type Dwell struct {
	ComplaintID int64         `json:"complaint_id"`
	Status      string        `json:"status"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Duration    time.Duration `json:"-"`
	Days        float64       `json:"days"`
	Open        bool          `json:"open"`
}

// DwellStat is the aggregate dwell figure for one status label. Means and
// totals average the raw durations and round once, at this edge
type DwellStat struct {
	Status    string  `json:"status"`
	Intervals int     `json:"intervals"`
	MeanDays  float64 `json:"mean_days"`
	TotalDays float64 `json:"total_days"`
}

// Dwells walks the complaint's sorted events and pairs each with its
// successor. The final event opens an interval with no end; it is dropped
// unless opts.IncludeOpenInterval, in which case it closes at the
// effective as-of. An as-of earlier than the final event skips the open
// interval rather than emitting a negative duration. ErrMissingHistory
// when the complaint has no events
func (a *Analyzer) Dwells(id int64, opts DwellOptions) ([]Dwell, error) {
	evs := a.events[id]
	if len(evs) == 0 {
		return nil, ErrMissingHistory
	}
	out := make([]Dwell, 0, len(evs))
	for i := 0; i+1 < len(evs); i++ {
		d := evs[i+1].At.Sub(evs[i].At)
		out = append(out, Dwell{
			ComplaintID: id,
			Status:      evs[i].Status,
			Start:       evs[i].At,
			End:         evs[i+1].At,
			Duration:    d,
			Days:        round2(Days(d)),
		})
	}
	if opts.IncludeOpenInterval {
		last := evs[len(evs)-1]
		end := opts.AsOf
		if end.IsZero() {
			end = a.latest
		}
		if !end.Before(last.At) {
			d := end.Sub(last.At)
			out = append(out, Dwell{
				ComplaintID: id,
				Status:      last.Status,
				Start:       last.At,
				End:         end,
				Duration:    d,
				Days:        round2(Days(d)),
				Open:        true,
			})
		}
	}
	return out, nil
}

// DwellSummary groups every dwell interval by status across all
// complaints, averaging raw durations and rounding once per aggregate.
// Sorted by mean days descending, ties by status ascending.
// ErrEmptyResult when the snapshot had complaints and none had history
func (a *Analyzer) DwellSummary(opts DwellOptions) ([]DwellStat, []Warning, error) {
	type acc struct {
		n    int
		days float64
	}
	accs := make(map[string]*acc)
	var warns []Warning
	usable := 0

	end := opts.AsOf
	if end.IsZero() {
		end = a.latest
	}

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
		add := func(status string, d time.Duration) {
			g := accs[status]
			if g == nil {
				g = &acc{}
				accs[status] = g
			}
			g.n++
			g.days += Days(d)
		}
		for i := 0; i+1 < len(evs); i++ {
			add(evs[i].Status, evs[i+1].At.Sub(evs[i].At))
		}
		if opts.IncludeOpenInterval {
			last := evs[len(evs)-1]
			if end.Before(last.At) {
				warns = append(warns, Warning{
					Code:        WarnNegativeDuration,
					ComplaintID: c.ID,
					Detail: fmt.Sprintf("as-of %s predates final event %s",
						end.Format(time.RFC3339), last.At.Format(time.RFC3339)),
				})
			} else {
				add(last.Status, end.Sub(last.At))
			}
		}
	}
	if len(a.complaints) > 0 && usable == 0 {
		return nil, warns, ErrEmptyResult
	}

	stats := make([]DwellStat, 0, len(accs))
	for status, g := range accs {
		stats = append(stats, DwellStat{
			Status:    status,
			Intervals: g.n,
			MeanDays:  round2(g.days / float64(g.n)),
			TotalDays: round2(g.days),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].MeanDays != stats[j].MeanDays {
			return stats[i].MeanDays > stats[j].MeanDays
		}
		return stats[i].Status < stats[j].Status
	})
	return stats, warns, nil
}
