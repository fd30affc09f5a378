package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	cmpdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	rptdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/domain"
)

// table is one rendered report: a banner title, column names and
// pre-formatted cells
type table struct {
	Title string
	Cols  []string
	Rows  [][]string
}

const bannerWidth = 60

// printTable writes the fixed width council report layout
func printTable(w io.Writer, t table) {
	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", banner, t.Title, banner)
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}
	cells := make([]string, len(t.Cols))
	for i, c := range t.Cols {
		cells[i] = fmt.Sprintf("%-15s", c)
	}
	header := strings.Join(cells, " | ")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, row := range t.Rows {
		out := make([]string, len(row))
		for i, c := range row {
			out[i] = fmt.Sprintf("%-15s", c)
		}
		fmt.Fprintln(w, strings.Join(out, " | "))
	}
	fmt.Fprintf(w, "\nTotal records: %d\n", len(t.Rows))
}

// writeCSV emits the same table as headered csv
func writeCSV(w io.Writer, t table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Cols); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fint(v int64) string     { return strconv.FormatInt(v, 10) }
func ffloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// titleCase uppercases the first letter of a one word dimension label
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func fday(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func fstamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func overviewTable(o rptdom.Overview) table {
	rows := make([][]string, 0, len(o.Records))
	for _, r := range o.Records {
		days := ""
		if r.TurnaroundValid {
			days = strconv.Itoa(r.TurnaroundDays)
		}
		rows = append(rows, []string{
			fint(r.ComplaintID), r.Title, r.Category, fint(r.Ward), r.Status,
			fday(r.SubmittedAt), fday(r.ResolvedAt), days,
		})
	}
	return table{
		Title: "Complaint Lifecycle Overview",
		Cols: []string{
			"complaint_id", "title", "category", "ward", "status",
			"submitted", "resolved", "turnaround_days",
		},
		Rows: rows,
	}
}

func volumeTable(v rptdom.Volume) table {
	rows := make([][]string, 0, len(v.Rows))
	for _, g := range v.Rows {
		rows = append(rows, []string{g.Key, strconv.Itoa(g.Count), ffloat(g.Percent)})
	}
	return table{
		Title: "Complaint Volume by " + titleCase(v.Dimension),
		Cols:  []string{v.Dimension, "count", "percent"},
		Rows:  rows,
	}
}

func turnaroundTable(v rptdom.Turnaround) table {
	rows := make([][]string, 0, len(v.Rows))
	for _, g := range v.Rows {
		rows = append(rows, []string{g.Key, strconv.Itoa(g.Count), ffloat(g.Value)})
	}
	return table{
		Title: "Mean Turnaround by " + titleCase(v.Dimension),
		Cols:  []string{v.Dimension, "resolved", "mean_days"},
		Rows:  rows,
	}
}

func dwellTable(d rptdom.Dwell) table {
	rows := make([][]string, 0, len(d.Stats))
	for _, s := range d.Stats {
		rows = append(rows, []string{
			s.Status, strconv.Itoa(s.Intervals), ffloat(s.MeanDays), ffloat(s.TotalDays),
		})
	}
	return table{
		Title: "Status Dwell Summary",
		Cols:  []string{"status", "intervals", "mean_days", "total_days"},
		Rows:  rows,
	}
}

func mixTable(m rptdom.MixReport) table {
	row := []string{
		strconv.Itoa(m.Mix.Total), strconv.Itoa(m.Mix.Submitted),
		strconv.Itoa(m.Mix.InProgress), strconv.Itoa(m.Mix.Resolved),
		strconv.Itoa(m.Mix.Other), ffloat(m.Mix.Rate),
	}
	return table{
		Title: "Complaint Status Mix",
		Cols:  []string{"total", "submitted", "in_progress", "resolved", "other", "resolution_rate"},
		Rows:  [][]string{row},
	}
}

func performanceTable(title string, p rptdom.Performance) table {
	rows := make([][]string, 0, len(p.Rows))
	for _, m := range p.Rows {
		rows = append(rows, []string{
			m.Key, strconv.Itoa(m.Total), strconv.Itoa(m.Submitted),
			strconv.Itoa(m.InProgress), strconv.Itoa(m.Resolved), ffloat(m.Rate),
		})
	}
	return table{
		Title: title,
		Cols:  []string{p.Dimension, "total", "submitted", "in_progress", "resolved", "resolution_rate"},
		Rows:  rows,
	}
}

func overdueTable(o rptdom.Overdue) table {
	rows := make([][]string, 0, len(o.Rows))
	for _, r := range o.Rows {
		rows = append(rows, []string{
			fint(r.ComplaintID), r.Title, r.Category, fint(r.Ward),
			r.Status, fday(r.SubmittedAt), strconv.Itoa(r.DaysOld),
		})
	}
	return table{
		Title: fmt.Sprintf("Overdue Complaints (Over %d Days)", o.ThresholdDays),
		Cols:  []string{"complaint_id", "title", "category", "ward", "status", "submitted", "days_old"},
		Rows:  rows,
	}
}

func trendsTable(tr rptdom.Trends) table {
	rows := make([][]string, 0, len(tr.Rows))
	for _, r := range tr.Rows {
		rows = append(rows, []string{
			r.Month, fint(r.Total), fint(r.Submitted), fint(r.InProgress),
			fint(r.Resolved), ffloat(r.ResolutionRate), ffloat(r.MeanTurnaroundDays),
		})
	}
	return table{
		Title: fmt.Sprintf("Monthly Complaint Trends (%s)", tr.Source),
		Cols: []string{
			"month", "total", "submitted", "in_progress", "resolved",
			"resolution_rate", "mean_turnaround_days",
		},
		Rows: rows,
	}
}

func listTable(title string, rows []cmpdom.ListRow) table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			fint(r.ComplaintID), r.Title, r.Category, fint(r.Ward),
			r.Resident, r.Status, fday(r.SubmittedAt),
		})
	}
	return table{
		Title: title,
		Cols:  []string{"complaint_id", "title", "category", "ward", "resident", "status", "submitted"},
		Rows:  out,
	}
}

func timelineTable(t cmpdom.Timeline) table {
	rows := make([][]string, 0, len(t.Events))
	for _, e := range t.Events {
		rows = append(rows, []string{fint(e.EventID), e.Status, fstamp(e.OccurredAt)})
	}
	return table{
		Title: fmt.Sprintf("Status Timeline for Complaint %d", t.ComplaintID),
		Cols:  []string{"event_id", "status", "occurred_at"},
		Rows:  rows,
	}
}
