// Package service contains the csv ingest workflow
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/adapters/civicsv"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/core/lifecycle"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"
	cmpdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/domain"
)

// FilesInDir returns the conventional export layout under dir
func FilesInDir(dir string) domain.FileSet {
	return domain.FileSet{
		Residents:  filepath.Join(dir, civicsv.ResidentsFile),
		Categories: filepath.Join(dir, civicsv.CategoriesFile),
		Complaints: filepath.Join(dir, civicsv.ComplaintsFile),
		StatusLogs: filepath.Join(dir, civicsv.StatusLogsFile),
	}
}

// Options holds configuration options for the ingest service
type Options struct {
	// Rollup refreshes the clickhouse monthly rollup after a successful run
	Rollup bool
	// Source is recorded on the ingest_runs row, default csv
	Source string
}

// Service implements the ingest worker
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Snap   cmpdom.SnapshotPort
	CH     store.Clickhouse
	Cfg    Options

	// Log carries the worker logger; runs have no request scope to pull one from
	Log logger.Logger
}

// New constructs the ingest service. CH may be nil when rollups are off
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	snap cmpdom.SnapshotPort,
	ch store.Clickhouse,
	cfg Options,
) *Service {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	if cfg.Source == "" {
		cfg.Source = "csv"
	}
	return &Service{DB: db, Binder: binder, Snap: snap, CH: ch, Cfg: cfg}
}

// EnsureSchema bootstraps the postgres tables, idempotent
func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.Binder.Bind(s.DB).EnsureSchema(ctx)
}

// batch holds the parsed and normalized rows for one run
type batch struct {
	residents  []domain.Resident
	categories []domain.Category
	complaints []domain.Complaint
	events     []domain.StatusChange
	warns      []domain.RowWarning
}

// Run loads one file set inside a single transaction and records the run.
// Bad rows are skipped and counted; a hard failure rolls everything back
func (s *Service) Run(ctx context.Context, files domain.FileSet) (domain.RunReport, error) {
	if files.Empty() {
		return domain.RunReport{}, perr.InvalidArgf("no input files")
	}

	rep := domain.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	b, err := s.parse(files)
	if err != nil {
		return rep, err
	}
	rep.Warnings = b.warns
	rep.Skipped = len(b.warns)

	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		var err error
		if rep.Residents, err = r.UpsertResidents(ctx, b.residents); err != nil {
			return err
		}
		if rep.Categories, err = r.UpsertCategories(ctx, b.categories); err != nil {
			return err
		}
		if rep.Complaints, err = r.UpsertComplaints(ctx, b.complaints); err != nil {
			return err
		}
		if rep.Events, err = r.UpsertEvents(ctx, b.events); err != nil {
			return err
		}
		rep.FinishedAt = time.Now().UTC()
		return r.RecordRun(ctx, domain.RunRow{
			RunID:      rep.RunID,
			StartedAt:  rep.StartedAt,
			FinishedAt: rep.FinishedAt,
			Source:     s.Cfg.Source,
			Residents:  rep.Residents,
			Categories: rep.Categories,
			Complaints: rep.Complaints,
			Events:     rep.Events,
			Skipped:    rep.Skipped,
			Note:       note(files),
		})
	})
	if err != nil {
		return rep, err
	}

	s.Log.Info().
		Str("run_id", rep.RunID).
		Int("residents", rep.Residents).
		Int("categories", rep.Categories).
		Int("complaints", rep.Complaints).
		Int("events", rep.Events).
		Int("skipped", rep.Skipped).
		Msg("ingest: run committed")

	if s.Cfg.Rollup {
		if err := s.RefreshRollup(ctx); err != nil {
			// the run is committed; a rollup failure is operational noise
			s.Log.Warn().Err(err).Msg("ingest: rollup refresh failed")
		}
	}
	return rep, nil
}

// parse reads and normalizes every named file before any write happens
func (s *Service) parse(files domain.FileSet) (batch, error) {
	var b batch

	if files.Residents != "" {
		r, err := civicsv.OpenResidents(files.Residents)
		if err != nil {
			return b, err
		}
		err = drain(r, civicsv.ResidentsFile, &b.warns, func(row civicsv.ResidentRow) {
			b.residents = append(b.residents, domain.Resident{
				ID:        row.ID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Ward:      row.Ward,
				Email:     row.Email,
				Phone:     row.Phone,
			})
		})
		if err != nil {
			return b, err
		}
	}

	if files.Categories != "" {
		r, err := civicsv.OpenCategories(files.Categories)
		if err != nil {
			return b, err
		}
		err = drain(r, civicsv.CategoriesFile, &b.warns, func(row civicsv.CategoryRow) {
			b.categories = append(b.categories, domain.Category{ID: row.ID, Name: row.Name})
		})
		if err != nil {
			return b, err
		}
	}

	if files.Complaints != "" {
		r, err := civicsv.OpenComplaints(files.Complaints)
		if err != nil {
			return b, err
		}
		err = drain(r, civicsv.ComplaintsFile, &b.warns, func(row civicsv.ComplaintRow) {
			b.complaints = append(b.complaints, domain.Complaint{
				ID:          row.ID,
				ResidentID:  row.ResidentID,
				CategoryID:  row.CategoryID,
				Title:       row.Title,
				Description: row.Description,
				SubmittedAt: row.SubmittedAt,
			})
		})
		if err != nil {
			return b, err
		}
	}

	if files.StatusLogs != "" {
		r, err := civicsv.OpenStatusLogs(files.StatusLogs)
		if err != nil {
			return b, err
		}
		err = drain(r, civicsv.StatusLogsFile, &b.warns, func(row civicsv.StatusLogRow) {
			label, known := NormalizeStatus(row.Status)
			if !known {
				b.warns = append(b.warns, domain.RowWarning{
					File:   civicsv.StatusLogsFile,
					Reason: fmt.Sprintf("log %d: unrecognized status %q kept as %q", row.ID, row.Status, label),
				})
			}
			b.events = append(b.events, domain.StatusChange{
				EventID:     row.ID,
				ComplaintID: row.ComplaintID,
				Status:      label,
				OccurredAt:  row.At,
			})
		})
		if err != nil {
			return b, err
		}
	}

	return b, nil
}

// drain consumes a reader, keeping good rows and counting bad ones
func drain[T any](r *civicsv.Reader[T], file string, warns *[]domain.RowWarning, keep func(T)) error {
	defer r.Close()
	for {
		row, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var re *civicsv.RowError
			if errors.As(err, &re) {
				*warns = append(*warns, domain.RowWarning{
					File:   file,
					Line:   re.Line,
					Reason: re.Err.Error(),
				})
				continue
			}
			return err
		}
		keep(row)
	}
}

// rollupTable holds one row per month keyed for replacement, so refreshes
// converge instead of accumulating
const rollupTable = "complaint_monthly"

const rollupDDL = `
CREATE TABLE IF NOT EXISTS complaint_monthly (
	month                String,
	total                Int64,
	submitted            Int64,
	in_progress          Int64,
	resolved             Int64,
	resolution_rate      Float64,
	mean_turnaround_days Float64,
	loaded_at            DateTime
) ENGINE = ReplacingMergeTree(loaded_at)
ORDER BY month
`

// RefreshRollup recomputes the monthly rollup in clickhouse from the
// current postgres snapshot
func (s *Service) RefreshRollup(ctx context.Context) error {
	if s.CH == nil {
		return perr.Unavailablef("clickhouse not configured")
	}
	if s.Snap == nil {
		return perr.Internalf("ingest: snapshot port not wired")
	}

	snap, err := s.Snap.Snapshot(ctx)
	if err != nil {
		return err
	}
	a := lifecycle.NewAnalyzer(snap)

	mixes, _, err := a.StatusMixBy(lifecycle.DimensionMonth, time.Time{})
	if err != nil {
		if errors.Is(err, lifecycle.ErrEmptyResult) {
			return nil
		}
		return err
	}
	means, _, err := a.GroupAndAggregate(
		lifecycle.DimensionMonth, lifecycle.MetricMeanTurnaroundDays, lifecycle.AggregateOptions{},
	)
	if err != nil && !errors.Is(err, lifecycle.ErrEmptyResult) {
		return err
	}
	meanByMonth := make(map[string]float64, len(means))
	for _, row := range means {
		meanByMonth[row.Key] = row.Value
	}

	if err := s.CH.Exec(ctx, rollupDDL); err != nil {
		return err
	}

	loaded := time.Now().UTC()
	cols := []string{
		"month", "total", "submitted", "in_progress", "resolved",
		"resolution_rate", "mean_turnaround_days", "loaded_at",
	}
	rows := make([][]any, 0, len(mixes))
	for _, m := range mixes {
		rows = append(rows, []any{
			m.Key,
			int64(m.Total), int64(m.Submitted), int64(m.InProgress), int64(m.Resolved),
			m.Rate, meanByMonth[m.Key], loaded,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.CH.Insert(ctx, rollupTable, cols, rows); err != nil {
		return err
	}

	s.Log.Info().Int("months", len(rows)).Msg("ingest: rollup refreshed")
	return nil
}

func note(files domain.FileSet) string {
	n := 0
	for _, f := range []string{files.Residents, files.Categories, files.Complaints, files.StatusLogs} {
		if f != "" {
			n++
		}
	}
	return fmt.Sprintf("%d files", n)
}
