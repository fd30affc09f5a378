// Package lifecycle reconstructs per-complaint lifecycle metrics from an
// append-only log of status events
package lifecycle

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Canonical status labels. The label set is open ended; these three are
// the ones the derived reports key on
const (
	// StatusSubmitted is the intake marker status
	StatusSubmitted = "Submitted"
	// StatusInProgress marks a complaint being worked
	StatusInProgress = "In Progress"
	// StatusResolved is the terminal status
	StatusResolved = "Resolved"
)

var (
	// ErrMissingHistory marks a complaint with no status events at or
	// before the requested time, or an unknown complaint id
	ErrMissingHistory = errors.New("lifecycle: missing status history")

	// ErrUnresolved marks a complaint that never reached Resolved
	ErrUnresolved = errors.New("lifecycle: complaint not resolved")

	// ErrNegativeDuration marks a derived duration that came out negative,
	// which means the underlying rows are inconsistent
	ErrNegativeDuration = errors.New("lifecycle: negative duration")

	// ErrEmptyResult is returned when the snapshot had complaints but every
	// one of them failed validation. An empty snapshot is an empty result,
	// not an error
	ErrEmptyResult = errors.New("lifecycle: no usable records")
)

// WarningCode classifies a per-record data quality warning
type WarningCode string

const (
	// WarnMissingHistory flags a complaint with zero status events
	WarnMissingHistory WarningCode = "missing_history"
	// WarnAmbiguousResolution flags duplicate Resolved events (earliest wins)
	WarnAmbiguousResolution WarningCode = "ambiguous_resolution"
	// WarnNegativeDuration flags a negative derived duration
	WarnNegativeDuration WarningCode = "negative_duration"
	// WarnUnknownReference flags a dangling resident or category reference
	WarnUnknownReference WarningCode = "unknown_reference"
)

// Warning reports a data quality problem found while deriving metrics.
// Warnings accompany results; they never abort a computation
type Warning struct {
	Code        WarningCode `json:"code"`
	ComplaintID int64       `json:"complaint_id"`
	Detail      string      `json:"detail"`
}

// Resident is reference data: identity plus ward assignment
type Resident struct {
	ID   int64
	Ward int64
}

// Category is reference data: identity plus display name
type Category struct {
	ID   int64
	Name string
}

// Complaint is a read-only input row. SubmittedAt is the submission date
// recorded at intake; turnaround math uses the reconstructed submission
// (earliest status event) instead
type Complaint struct {
	ID          int64
	ResidentID  int64
	CategoryID  int64
	Title       string
	SubmittedAt time.Time
}

// StatusEvent is one row of the append-only status log. Seq is the
// insertion order id and breaks ties between events sharing a timestamp
type StatusEvent struct {
	Seq         int64     `json:"seq"`
	ComplaintID int64     `json:"complaint_id"`
	Status      string    `json:"status"`
	At          time.Time `json:"at"`
}

// Snapshot is the immutable input to an Analyzer: one scoped read of the
// store, taken before analysis begins. Slice order does not matter; the
// analyzer sorts
type Snapshot struct {
	Residents  []Resident
	Categories []Category
	Complaints []Complaint
	Events     []StatusEvent
}

// Analyzer derives lifecycle metrics from a Snapshot. It is pure and safe
// for concurrent use once constructed; operations never mutate the
// snapshot, and identical snapshots yield identical output
type Analyzer struct {
	complaints []Complaint
	events     map[int64][]StatusEvent
	residents  map[int64]Resident
	categories map[int64]Category
	latest     time.Time
}

// NewAnalyzer copies the snapshot and sorts events per complaint by
// (timestamp, seq). The input slices are never retained or mutated
func NewAnalyzer(snap Snapshot) *Analyzer {
	a := &Analyzer{
		complaints: make([]Complaint, len(snap.Complaints)),
		events:     make(map[int64][]StatusEvent),
		residents:  make(map[int64]Resident, len(snap.Residents)),
		categories: make(map[int64]Category, len(snap.Categories)),
	}
	copy(a.complaints, snap.Complaints)
	sort.SliceStable(a.complaints, func(i, j int) bool {
		return a.complaints[i].ID < a.complaints[j].ID
	})
	for _, r := range snap.Residents {
		a.residents[r.ID] = r
	}
	for _, c := range snap.Categories {
		a.categories[c.ID] = c
	}
	for _, ev := range snap.Events {
		a.events[ev.ComplaintID] = append(a.events[ev.ComplaintID], ev)
		if ev.At.After(a.latest) {
			a.latest = ev.At
		}
	}
	for id := range a.events {
		evs := a.events[id]
		sort.SliceStable(evs, func(i, j int) bool {
			if !evs[i].At.Equal(evs[j].At) {
				return evs[i].At.Before(evs[j].At)
			}
			return evs[i].Seq < evs[j].Seq
		})
	}
	return a
}

// Latest returns the latest event timestamp in the snapshot, zero when the
// snapshot has no events. It anchors clock free open interval and age math
func (a *Analyzer) Latest() time.Time {
	return a.latest
}

// History returns the complaint's status events sorted by (timestamp, seq).
// The returned slice is a copy; nil when the complaint has no events
func (a *Analyzer) History(id int64) []StatusEvent {
	evs := a.events[id]
	if len(evs) == 0 {
		return nil
	}
	out := make([]StatusEvent, len(evs))
	copy(out, evs)
	return out
}

// Submission returns the reconstructed submission time: the timestamp of
// the earliest status event. ErrMissingHistory when the complaint has none
func (a *Analyzer) Submission(id int64) (time.Time, error) {
	evs := a.events[id]
	if len(evs) == 0 {
		return time.Time{}, ErrMissingHistory
	}
	return evs[0].At, nil
}

// Resolution returns the timestamp of the earliest Resolved event and the
// total count of Resolved events in the history. A zero count means the
// complaint never resolved; a count above one is the duplicate terminal
// anomaly, settled earliest-wins so later re-resolutions cannot stretch
// the measured turnaround
func (a *Analyzer) Resolution(id int64) (at time.Time, count int, err error) {
	evs := a.events[id]
	if len(evs) == 0 {
		return time.Time{}, 0, ErrMissingHistory
	}
	for _, ev := range evs {
		if ev.Status == StatusResolved {
			if count == 0 {
				at = ev.At
			}
			count++
		}
	}
	return at, count, nil
}

// Turnaround returns resolution minus submission as a raw duration.
// Rendering in whole days happens at the presentation or aggregate edge,
// never here. ErrUnresolved when the complaint never reached Resolved;
// ErrNegativeDuration, with the measured value still returned for
// diagnosis, when the history is inconsistent
func (a *Analyzer) Turnaround(id int64) (time.Duration, error) {
	sub, err := a.Submission(id)
	if err != nil {
		return 0, err
	}
	res, n, err := a.Resolution(id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrUnresolved
	}
	d := res.Sub(sub)
	if d < 0 {
		return d, ErrNegativeDuration
	}
	return d, nil
}

// StatusAt returns the status of the latest event at or before asOf,
// honoring the (timestamp, seq) order for ties. A zero asOf means no
// bound. ErrMissingHistory when the complaint has no events at or before
// asOf. A complaint is open as of a time iff this status is not Resolved
func (a *Analyzer) StatusAt(id int64, asOf time.Time) (string, error) {
	evs := a.events[id]
	if len(evs) == 0 {
		return "", ErrMissingHistory
	}
	if asOf.IsZero() {
		return evs[len(evs)-1].Status, nil
	}
	status := ""
	found := false
	for _, ev := range evs {
		if ev.At.After(asOf) {
			break
		}
		status = ev.Status
		found = true
	}
	if !found {
		return "", ErrMissingHistory
	}
	return status, nil
}

// Days converts a raw duration to fractional days
func Days(d time.Duration) float64 {
	return d.Hours() / 24
}

// RoundDays renders a raw duration as whole days, rounding half away from
// zero. Display only: aggregates average the raw durations and round once
func RoundDays(d time.Duration) int {
	return int(math.Round(Days(d)))
}

// round2 rounds an aggregate figure to two decimals
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
