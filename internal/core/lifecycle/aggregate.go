package lifecycle

import (
	"fmt"
	"sort"
	"strconv"
)

// Dimension selects the grouping key for aggregate reports
type Dimension string

const (
	// DimensionResident groups by the owning resident id
	DimensionResident Dimension = "resident"
	// DimensionCategory groups by service category name
	DimensionCategory Dimension = "category"
	// DimensionWard groups by the resident's ward
	DimensionWard Dimension = "ward"
	// DimensionMonth groups by the month of the reconstructed submission, UTC
	DimensionMonth Dimension = "month"
)

// Metric selects the aggregate computed per group
type Metric string

const (
	// MetricCount counts complaints per group
	MetricCount Metric = "count"
	// MetricMeanTurnaroundDays averages raw turnaround per group, in days
	MetricMeanTurnaroundDays Metric = "mean_turnaround_days"
)

// ParseDimension validates a dimension name from a flag or request
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionResident, DimensionCategory, DimensionWard, DimensionMonth:
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// ParseMetric validates a metric name from a flag or request
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricCount, MetricMeanTurnaroundDays:
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// AggregateOptions tunes GroupAndAggregate
type AggregateOptions struct {
	// TopN keeps only the first n groups after sorting; zero keeps all
	TopN int
}

// GroupRow is one group in an aggregate report. Value is the requested
// metric; Percent is the group's share of counted records, set only for
// the count metric
type GroupRow struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent,omitempty"`
}

// GroupAndAggregate folds derived records into groups along a dimension
// and computes the metric per group. Results sort descending by the
// aggregate value, ties ascending by group key (numeric when both keys
// are numbers, so resident and ward ids order naturally). Records missing
// the reference a dimension needs are left out of that dimension only;
// the unknown_reference warning comes from the record pass. For the mean
// metric, only records with a valid turnaround contribute and Count is
// the number that did
func (a *Analyzer) GroupAndAggregate(dim Dimension, metric Metric, opts AggregateOptions) ([]GroupRow, []Warning, error) {
	if _, err := ParseDimension(string(dim)); err != nil {
		return nil, nil, err
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, nil, err
	}
	recs, warns, err := a.Records()
	if err != nil {
		return nil, warns, err
	}

	type acc struct {
		n    int
		days float64
	}
	groups := make(map[string]*acc)
	for _, r := range recs {
		key, ok := groupKey(r, dim)
		if !ok {
			continue
		}
		g := groups[key]
		if g == nil {
			g = &acc{}
			groups[key] = g
		}
		switch metric {
		case MetricCount:
			g.n++
		case MetricMeanTurnaroundDays:
			if r.TurnaroundValid {
				g.n++
				g.days += Days(r.Turnaround)
			}
		}
	}

	total := 0
	for _, g := range groups {
		total += g.n
	}
	rows := make([]GroupRow, 0, len(groups))
	for key, g := range groups {
		if g.n == 0 {
			continue
		}
		row := GroupRow{Key: key, Count: g.n}
		switch metric {
		case MetricCount:
			row.Value = float64(g.n)
			row.Percent = round2(float64(g.n) * 100 / float64(total))
		case MetricMeanTurnaroundDays:
			row.Value = round2(g.days / float64(g.n))
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return keyLess(rows[i].Key, rows[j].Key)
	})
	if opts.TopN > 0 && len(rows) > opts.TopN {
		rows = rows[:opts.TopN]
	}
	return rows, warns, nil
}

// groupKey extracts the grouping key for one record. ok is false when the
// record lacks the reference this dimension needs
func groupKey(r Record, dim Dimension) (string, bool) {
	switch dim {
	case DimensionResident:
		return strconv.FormatInt(r.ResidentID, 10), true
	case DimensionCategory:
		if !r.HasCategory {
			return "", false
		}
		return r.Category, true
	case DimensionWard:
		if !r.HasResident {
			return "", false
		}
		return strconv.FormatInt(r.Ward, 10), true
	case DimensionMonth:
		return r.SubmittedAt.UTC().Format("2006-01"), true
	}
	return "", false
}

// keyLess orders tie groups: numeric when both keys parse as integers,
// lexicographic otherwise
func keyLess(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
