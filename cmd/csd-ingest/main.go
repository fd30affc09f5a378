package main

import (
	"context"
	"flag"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/module"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"

	ingestmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/module"
	ingestsvc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/ingest/service"
)

func main() {
	root := config.New()
	ingCfg := root.Prefix("CORE_INGEST_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	var (
		fDir        = flag.String("dir", "", "directory holding the exported csv files")
		fResidents  = flag.String("residents", "", "residents csv path, overrides -dir")
		fCategories = flag.String("categories", "", "service categories csv path, overrides -dir")
		fComplaints = flag.String("complaints", "", "complaints csv path, overrides -dir")
		fStatusLogs = flag.String("status-logs", "", "status log csv path, overrides -dir")
		fInitOnly   = flag.Bool("init-only", false, "create the schema and exit without loading")
		fRollup     = flag.Bool("rollup", false, "refresh the clickhouse monthly rollup after the load")
		fSource     = flag.String("source", "", "source label stamped onto the run record")
	)
	flag.Parse()

	// CH comes up only when a rollup refresh was asked for
	rollup := *fRollup || ingCfg.MayBool("ROLLUP", false)
	chURL := ""
	if rollup {
		chURL = chCfg.MustString("DBURL")
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "csd-ingest",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		CH: store.CHConfig{
			Enabled: rollup,
			URL:     chURL,
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx := context.Background()

	// fail fast before touching any files
	repokit.MustGuard(ctx, st)

	// one load at a time; a second runner blocks here until the first commits
	db := repokit.WithBeginHooks(st.PG, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('csd_ingest_run'))`)
		return err
	})

	deps := modkit.Deps{
		Cfg: root,
		PG:  db,
		CH:  st.CH,
		Log: *l,
	}

	ing := ingestmod.New(deps, ingestmod.Options{
		Rollup: rollup,
		Source: *fSource,
	})
	module.Register(ing.Name(), ing.Ports())

	runner := ing.Ports().(ingestmod.Ports).Runner

	if err := runner.EnsureSchema(ctx); err != nil {
		l.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	if *fInitOnly {
		l.Info().Msg("schema ready, exiting on --init-only")
		return
	}

	dir := *fDir
	if dir == "" {
		dir = ingCfg.MayString("CSV_DIR", "./data")
	}
	files := ingestsvc.FilesInDir(dir)
	if *fResidents != "" {
		files.Residents = *fResidents
	}
	if *fCategories != "" {
		files.Categories = *fCategories
	}
	if *fComplaints != "" {
		files.Complaints = *fComplaints
	}
	if *fStatusLogs != "" {
		files.StatusLogs = *fStatusLogs
	}

	report, err := runner.Run(ctx, files)
	if err != nil {
		l.Fatal().Err(err).Msg("ingest failed")
	}

	// surface per row skips so operators can fix the export
	for _, w := range report.Warnings {
		l.Warn().Str("file", w.File).Int("line", w.Line).Msg(w.Reason)
	}
}
