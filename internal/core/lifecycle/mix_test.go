package lifecycle

import (
	"errors"
	"testing"
	"time"
)

func TestStatusMix_LatestTotals(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	m, warns, err := a.StatusMix(time.Time{})
	if err != nil {
		t.Fatalf("StatusMix: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("warns = %+v", warns)
	}
	want := Mix{Total: 3, Submitted: 0, InProgress: 1, Resolved: 2, Rate: 66.67}
	if m != want {
		t.Fatalf("mix = %+v, want %+v", m, want)
	}
}

func TestStatusMix_AsOf(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	m, _, err := a.StatusMix(day(1))
	if err != nil {
		t.Fatalf("StatusMix: %v", err)
	}
	// day 1: complaint 1 just moved to In Progress, 2 and 3 still Submitted
	if m.Total != 3 || m.Submitted != 2 || m.InProgress != 1 || m.Resolved != 0 {
		t.Fatalf("mix = %+v", m)
	}
	if m.Rate != 0 {
		t.Fatalf("rate = %v, want 0 with nothing resolved yet", m.Rate)
	}
}

func TestStatusMix_BeforeAnyHistoryIsEmptyNotError(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	m, _, err := a.StatusMix(day(0).Add(-time.Hour))
	if err != nil {
		t.Fatalf("StatusMix: %v", err)
	}
	if m.Total != 0 || m.Rate != 0 {
		t.Fatalf("mix = %+v, want an empty tally before any event", m)
	}
}

func TestStatusMix_EmptyResult(t *testing.T) {
	a := NewAnalyzer(Snapshot{
		Complaints: []Complaint{{ID: 1, SubmittedAt: day(0)}},
	})
	if _, _, err := a.StatusMix(time.Time{}); !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("err = %v, want ErrEmptyResult", err)
	}
}

func TestStatusMixBy_Ward(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	rows, _, err := a.StatusMixBy(DimensionWard, time.Time{})
	if err != nil {
		t.Fatalf("StatusMixBy: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Key != "3" || rows[0].Total != 2 || rows[0].Resolved != 2 || rows[0].Rate != 100 {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Key != "5" || rows[1].Total != 1 || rows[1].InProgress != 1 || rows[1].Rate != 0 {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
}

func TestStatusMixBy_CategoryExcludesDanglingRef(t *testing.T) {
	snap := testSnapshot()
	snap.Complaints = append(snap.Complaints, Complaint{
		ID: 9, ResidentID: 1, CategoryID: 88, Title: "No such category", SubmittedAt: day(0),
	})
	snap.Events = append(snap.Events,
		StatusEvent{Seq: 20, ComplaintID: 9, Status: StatusSubmitted, At: day(0)},
	)
	a := NewAnalyzer(snap)

	rows, warns, err := a.StatusMixBy(DimensionCategory, time.Time{})
	if err != nil {
		t.Fatalf("StatusMixBy: %v", err)
	}
	total := 0
	for _, m := range rows {
		total += m.Total
	}
	if total != 3 {
		t.Fatalf("total = %d, want the dangling record out of the category mix", total)
	}
	var flagged bool
	for _, w := range warns {
		if w.Code == WarnUnknownReference && w.ComplaintID == 9 {
			flagged = true
		}
	}
	if !flagged {
		t.Fatalf("warns = %+v", warns)
	}
}

func TestStatusMixBy_RejectsUnknownDimension(t *testing.T) {
	a := NewAnalyzer(testSnapshot())
	if _, _, err := a.StatusMixBy(Dimension("borough"), time.Time{}); err == nil {
		t.Fatalf("expected unknown dimension error")
	}
}

func TestOpenAges_Explicit(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	rows, warns, err := a.OpenAges(day(10))
	if err != nil {
		t.Fatalf("OpenAges: %v", err)
	}
	if len(warns) != 0 {
		t.Fatalf("warns = %+v", warns)
	}
	// complaints 1 and 3 are resolved; only 2 is still open
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	r := rows[0]
	if r.ComplaintID != 2 || r.Status != StatusInProgress || r.Ward != 5 || r.Category != "Sanitation" {
		t.Fatalf("row = %+v", r)
	}
	if r.Age != 10*24*time.Hour || r.DaysOld != 10 {
		t.Fatalf("age = %v days %d, want measured from the recorded submission", r.Age, r.DaysOld)
	}
}

func TestOpenAges_ZeroAsOfUsesSnapshotLatest(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	rows, _, err := a.OpenAges(time.Time{})
	if err != nil {
		t.Fatalf("OpenAges: %v", err)
	}
	if len(rows) != 1 || rows[0].DaysOld != 9 {
		t.Fatalf("rows = %+v, want aged to the latest event at day 9", rows)
	}
}

func TestOpenAges_TruncatesPartialDays(t *testing.T) {
	a := NewAnalyzer(testSnapshot())

	rows, _, err := a.OpenAges(day(1).Add(12 * time.Hour))
	if err != nil {
		t.Fatalf("OpenAges: %v", err)
	}
	if len(rows) != 1 || rows[0].DaysOld != 1 {
		t.Fatalf("rows = %+v, want 1.5 days truncated to 1", rows)
	}
}

func TestOpenAges_FutureSubmissionWarnsAndExcludes(t *testing.T) {
	snap := testSnapshot()
	snap.Complaints = append(snap.Complaints, Complaint{
		ID: 7, ResidentID: 1, CategoryID: 1, Title: "Clock skewed intake", SubmittedAt: day(20),
	})
	snap.Events = append(snap.Events,
		StatusEvent{Seq: 20, ComplaintID: 7, Status: StatusSubmitted, At: day(0)},
	)
	a := NewAnalyzer(snap)

	rows, warns, err := a.OpenAges(day(10))
	if err != nil {
		t.Fatalf("OpenAges: %v", err)
	}
	for _, r := range rows {
		if r.ComplaintID == 7 {
			t.Fatalf("future dated submission must not produce an age: %+v", r)
		}
	}
	var flagged bool
	for _, w := range warns {
		if w.Code == WarnNegativeDuration && w.ComplaintID == 7 {
			flagged = true
		}
	}
	if !flagged {
		t.Fatalf("warns = %+v, want a negative_duration flag", warns)
	}
}

func TestOpenAges_SortsOldestFirst(t *testing.T) {
	a := NewAnalyzer(Snapshot{
		Complaints: []Complaint{
			{ID: 1, SubmittedAt: day(5)},
			{ID: 2, SubmittedAt: day(0)},
		},
		Events: []StatusEvent{
			{Seq: 1, ComplaintID: 1, Status: StatusSubmitted, At: day(5)},
			{Seq: 2, ComplaintID: 2, Status: StatusSubmitted, At: day(0)},
		},
	})

	rows, _, err := a.OpenAges(day(10))
	if err != nil {
		t.Fatalf("OpenAges: %v", err)
	}
	if len(rows) != 2 || rows[0].ComplaintID != 2 || rows[1].ComplaintID != 1 {
		t.Fatalf("rows = %+v, want the oldest complaint first", rows)
	}
}
