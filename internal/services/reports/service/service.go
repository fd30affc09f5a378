// Package service contains report workflows over the lifecycle analyzer
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/core/lifecycle"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	cmpdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/domain"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/repo"
)

// DefaultOverdueDays is the age threshold when the caller sets none
const DefaultOverdueDays = 30

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the reports service. Every report takes one scoped read
// through the snapshot port and runs the analyzer on the result
type Svc struct {
	Snap   cmpdom.SnapshotPort
	Rollup repo.Trends // nil when clickhouse is off
}

// New constructs a reports service. rollup may be nil
func New(snap cmpdom.SnapshotPort, rollup repo.Trends) *Svc {
	if snap == nil {
		panic("reports.Service requires a non nil SnapshotPort")
	}
	return &Svc{Snap: snap, Rollup: rollup}
}

// Overview returns the full derived record set with its warnings
func (s *Svc) Overview(ctx context.Context) (domain.Overview, error) {
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	recs, warns, err := a.Records()
	if err != nil {
		return domain.Overview{}, wrapEmpty(err)
	}
	return domain.Overview{Total: len(recs), Records: recs, Warnings: warns}, nil
}

// Volume returns complaint counts grouped by the requested dimension
func (s *Svc) Volume(ctx context.Context, in domain.VolumeInput) (domain.Volume, error) {
	dim, err := lifecycle.ParseDimension(in.Dimension)
	if err != nil {
		return domain.Volume{}, perr.InvalidArgf("%s", err)
	}
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.Volume{}, err
	}
	rows, warns, err := a.GroupAndAggregate(dim, lifecycle.MetricCount, lifecycle.AggregateOptions{TopN: in.TopN})
	if err != nil {
		return domain.Volume{}, wrapEmpty(err)
	}
	return domain.Volume{Dimension: in.Dimension, Rows: rows, Warnings: warns}, nil
}

// Turnaround returns mean turnaround days grouped by the requested dimension
func (s *Svc) Turnaround(ctx context.Context, in domain.TurnaroundInput) (domain.Turnaround, error) {
	dim, err := lifecycle.ParseDimension(in.Dimension)
	if err != nil {
		return domain.Turnaround{}, perr.InvalidArgf("%s", err)
	}
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.Turnaround{}, err
	}
	rows, warns, err := a.GroupAndAggregate(
		dim, lifecycle.MetricMeanTurnaroundDays, lifecycle.AggregateOptions{TopN: in.TopN},
	)
	if err != nil {
		return domain.Turnaround{}, wrapEmpty(err)
	}
	return domain.Turnaround{Dimension: in.Dimension, Rows: rows, Warnings: warns}, nil
}

// Dwell returns the per status dwell summary
func (s *Svc) Dwell(ctx context.Context, in domain.DwellInput) (domain.Dwell, error) {
	asOf, err := dayEnd(in.AsOf)
	if err != nil {
		return domain.Dwell{}, err
	}
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.Dwell{}, err
	}
	stats, warns, err := a.DwellSummary(lifecycle.DwellOptions{
		IncludeOpenInterval: in.IncludeOpen,
		AsOf:                asOf,
	})
	if err != nil {
		return domain.Dwell{}, wrapEmpty(err)
	}
	return domain.Dwell{IncludeOpen: in.IncludeOpen, Stats: stats, Warnings: warns}, nil
}

// StatusMix returns totals per current status with the resolution rate
func (s *Svc) StatusMix(ctx context.Context, in domain.MixInput) (domain.MixReport, error) {
	asOf, err := dayEnd(in.AsOf)
	if err != nil {
		return domain.MixReport{}, err
	}
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.MixReport{}, err
	}
	mix, warns, err := a.StatusMix(asOf)
	if err != nil {
		return domain.MixReport{}, wrapEmpty(err)
	}
	return domain.MixReport{Mix: mix, Warnings: warns}, nil
}

// WardPerformance returns the status mix per ward, busiest first
func (s *Svc) WardPerformance(ctx context.Context, in domain.PerformanceInput) (domain.Performance, error) {
	return s.performance(ctx, lifecycle.DimensionWard, in)
}

// CategoryResolution returns the status mix per category, busiest first
func (s *Svc) CategoryResolution(ctx context.Context, in domain.PerformanceInput) (domain.Performance, error) {
	return s.performance(ctx, lifecycle.DimensionCategory, in)
}

func (s *Svc) performance(ctx context.Context, dim lifecycle.Dimension, in domain.PerformanceInput) (domain.Performance, error) {
	asOf, err := dayEnd(in.AsOf)
	if err != nil {
		return domain.Performance{}, err
	}
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.Performance{}, err
	}
	rows, warns, err := a.StatusMixBy(dim, asOf)
	if err != nil {
		return domain.Performance{}, wrapEmpty(err)
	}
	return domain.Performance{Dimension: string(dim), Rows: rows, Warnings: warns}, nil
}

// Overdue lists active complaints strictly older than the threshold
func (s *Svc) Overdue(ctx context.Context, in domain.OverdueInput) (domain.Overdue, error) {
	asOf, err := dayEnd(in.AsOf)
	if err != nil {
		return domain.Overdue{}, err
	}
	days := in.ThresholdDays
	if days <= 0 {
		days = DefaultOverdueDays
	}
	a, err := s.analyzer(ctx)
	if err != nil {
		return domain.Overdue{}, err
	}
	ages, warns, err := a.OpenAges(asOf)
	if err != nil {
		return domain.Overdue{}, wrapEmpty(err)
	}
	threshold := time.Duration(days) * 24 * time.Hour
	rows := make([]lifecycle.OpenAge, 0, len(ages))
	for _, row := range ages {
		if row.Age > threshold {
			rows = append(rows, row)
		}
	}
	return domain.Overdue{ThresholdDays: days, Rows: rows, Warnings: warns}, nil
}

// Trends returns the monthly series, preferring the rollup when present
func (s *Svc) Trends(ctx context.Context, in domain.TrendsInput) (domain.Trends, error) {
	if !in.Live && s.Rollup != nil {
		rows, err := s.Rollup.Monthly(ctx)
		if err != nil {
			// a cold or unreachable rollup falls back to live computation
			logger.C(ctx).Warn().Err(err).Msg("reports: rollup read failed, computing live")
		} else if len(rows) > 0 {
			return domain.Trends{Source: "rollup", Rows: rows}, nil
		}
	}
	rows, err := s.liveTrends(ctx)
	if err != nil {
		return domain.Trends{}, err
	}
	return domain.Trends{Source: "live", Rows: rows}, nil
}

// liveTrends computes the monthly series straight from the snapshot
func (s *Svc) liveTrends(ctx context.Context) ([]domain.TrendRow, error) {
	a, err := s.analyzer(ctx)
	if err != nil {
		return nil, err
	}
	mixes, _, err := a.StatusMixBy(lifecycle.DimensionMonth, time.Time{})
	if err != nil {
		return nil, wrapEmpty(err)
	}
	means, _, err := a.GroupAndAggregate(
		lifecycle.DimensionMonth, lifecycle.MetricMeanTurnaroundDays, lifecycle.AggregateOptions{},
	)
	if err != nil && !errors.Is(err, lifecycle.ErrEmptyResult) {
		return nil, err
	}
	meanByMonth := make(map[string]float64, len(means))
	for _, row := range means {
		meanByMonth[row.Key] = row.Value
	}

	out := make([]domain.TrendRow, 0, len(mixes))
	for _, m := range mixes {
		out = append(out, domain.TrendRow{
			Month:              m.Key,
			Total:              int64(m.Total),
			Submitted:          int64(m.Submitted),
			InProgress:         int64(m.InProgress),
			Resolved:           int64(m.Resolved),
			ResolutionRate:     m.Rate,
			MeanTurnaroundDays: meanByMonth[m.Key],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// analyzer does the one scoped read behind every report
func (s *Svc) analyzer(ctx context.Context) (*lifecycle.Analyzer, error) {
	snap, err := s.Snap.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return lifecycle.NewAnalyzer(snap), nil
}

// dayEnd parses an ISO day and extends it to the end of that day so the
// bound includes everything recorded on it; zero when unset
func dayEnd(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, perr.InvalidArgf("invalid as_of %q", s)
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

func wrapEmpty(err error) error {
	if errors.Is(err, lifecycle.ErrEmptyResult) {
		return perr.Wrap(err, perr.ErrorCodeEmptyResult, "no usable complaint records")
	}
	return err
}
