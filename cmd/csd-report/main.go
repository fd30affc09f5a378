package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/module"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"
	str "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/strings"

	cmpdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	cmpmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/module"
	rptdom "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/domain"
	rptmod "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	// tables go to stdout, logs stay on stderr so output can be piped
	lopt := logger.FromEnv()
	lopt.Writer = os.Stderr
	if lopt.Service == "" {
		lopt.Service = "csd-report"
	}
	logger.Init(lopt)
	l := logger.Get()

	var (
		fReport = flag.String("report", "overview",
			"report to run: overview volume turnaround dwell status-mix ward-performance "+
				"category-resolution overdue trends active by-status resident-history timeline")
		fDimension   = flag.String("dimension", "category", "grouping dimension: resident category ward month")
		fTop         = flag.Int("top", 0, "keep only the top N groups")
		fAsOf        = flag.String("as-of", "", "count nothing recorded after this day, YYYY-MM-DD")
		fOverdueDays = flag.Int("overdue-days", 0, "age threshold in days for the overdue report (default 30)")
		fIncludeOpen = flag.Bool("include-open", false, "include the open tail when measuring dwell")
		fLive        = flag.Bool("live", false, "bypass the rollup and compute trends from postgres")
		fComplaint   = flag.Int64("complaint", 0, "complaint id for the timeline report")
		fResident    = flag.Int64("resident", 0, "resident id, required for resident-history")
		fWard        = flag.Int64("ward", -1, "ward filter for the active report")
		fCategory    = flag.Int64("category", 0, "category id filter for the active report")
		fStatus      = flag.String("status", "", "status for the by-status report")
		fLimit       = flag.Int("limit", 0, "max rows for list reports")
		fFormat      = flag.String("format", "", "output format: text json csv, default inferred from -out")
		fOut         = flag.String("out", "", "write to this file instead of stdout")
	)
	flag.Parse()

	// -out report.csv means csv without saying so twice
	if *fFormat == "" {
		switch {
		case str.HasSuffix(*fOut, ".json"):
			*fFormat = "json"
		case str.HasSuffix(*fOut, ".csv"):
			*fFormat = "csv"
		default:
			*fFormat = "text"
		}
	}
	switch *fFormat {
	case "text", "json", "csv":
	default:
		l.Fatal().Str("format", *fFormat).Msg("unknown format: want text, json or csv")
	}

	st, err := store.Open(context.Background(), store.Config{
		AppName: "csd-report",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", false),
			URL:     chCfg.MayString("DBURL", ""),
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
	repokit.MustGuard(ctx, st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// same wiring as the API: complaints owns the snapshot reads, reports
	// consume them through the injected port
	cmp := cmpmod.New(deps)
	snap := module.MustPortsOf[cmpmod.Ports](cmp).Snapshot
	rpt := rptmod.New(deps, modkit.WithPorts(rptmod.Ports{Snapshot: snap}))
	module.Register(cmp.Name(), cmp.Ports())
	module.Register(rpt.Name(), rpt.Ports())

	complaints := module.MustPortsOf[cmpdom.ServicePort](cmp)
	reports := module.MustPortsOf[rptdom.ServicePort](rpt)

	var (
		payload any
		tbl     table
	)

	switch *fReport {
	case "overview":
		o, err := reports.Overview(ctx)
		exitIf(l, err, "overview failed")
		payload, tbl = o, overviewTable(o)

	case "volume":
		v, err := reports.Volume(ctx, rptdom.VolumeInput{Dimension: *fDimension, TopN: *fTop})
		exitIf(l, err, "volume failed")
		payload, tbl = v, volumeTable(v)

	case "turnaround":
		v, err := reports.Turnaround(ctx, rptdom.TurnaroundInput{Dimension: *fDimension, TopN: *fTop})
		exitIf(l, err, "turnaround failed")
		payload, tbl = v, turnaroundTable(v)

	case "dwell":
		d, err := reports.Dwell(ctx, rptdom.DwellInput{IncludeOpen: *fIncludeOpen, AsOf: *fAsOf})
		exitIf(l, err, "dwell failed")
		payload, tbl = d, dwellTable(d)

	case "status-mix":
		m, err := reports.StatusMix(ctx, rptdom.MixInput{AsOf: *fAsOf})
		exitIf(l, err, "status-mix failed")
		payload, tbl = m, mixTable(m)

	case "ward-performance":
		p, err := reports.WardPerformance(ctx, rptdom.PerformanceInput{AsOf: *fAsOf})
		exitIf(l, err, "ward-performance failed")
		payload, tbl = p, performanceTable("Ward Performance Summary", p)

	case "category-resolution":
		p, err := reports.CategoryResolution(ctx, rptdom.PerformanceInput{AsOf: *fAsOf})
		exitIf(l, err, "category-resolution failed")
		payload, tbl = p, performanceTable("Complaint Resolution Statistics by Category", p)

	case "overdue":
		o, err := reports.Overdue(ctx, rptdom.OverdueInput{ThresholdDays: *fOverdueDays, AsOf: *fAsOf})
		exitIf(l, err, "overdue failed")
		payload, tbl = o, overdueTable(o)

	case "trends":
		tr, err := reports.Trends(ctx, rptdom.TrendsInput{Live: *fLive})
		exitIf(l, err, "trends failed")
		payload, tbl = tr, trendsTable(tr)

	case "active":
		in := cmpdom.ListInput{ActiveOnly: true, AsOf: *fAsOf, Limit: *fLimit}
		if *fWard >= 0 {
			in.Ward = fWard
		}
		if *fCategory > 0 {
			in.CategoryID = fCategory
		}
		if *fResident > 0 {
			in.ResidentID = fResident
		}
		rows, err := complaints.List(ctx, in)
		exitIf(l, err, "active failed")
		payload, tbl = rows, listTable("Active Complaints", rows)

	case "by-status":
		if *fStatus == "" {
			l.Fatal().Msg("by-status requires -status")
		}
		rows, err := complaints.List(ctx, cmpdom.ListInput{Status: *fStatus, AsOf: *fAsOf, Limit: *fLimit})
		exitIf(l, err, "by-status failed")
		payload, tbl = rows, listTable("Complaints with Status: "+*fStatus, rows)

	case "resident-history":
		if *fResident <= 0 {
			l.Fatal().Msg("resident-history requires -resident")
		}
		rows, err := complaints.List(ctx, cmpdom.ListInput{ResidentID: fResident, AsOf: *fAsOf, Limit: *fLimit})
		exitIf(l, err, "resident-history failed")
		payload, tbl = rows, listTable(fmt.Sprintf("Complaint History for Resident %d", *fResident), rows)

	case "timeline":
		if *fComplaint <= 0 {
			l.Fatal().Msg("timeline requires -complaint")
		}
		t, err := complaints.Timeline(ctx, *fComplaint)
		exitIf(l, err, "timeline failed")
		payload, tbl = t, timelineTable(t)

	default:
		l.Fatal().Str("report", *fReport).Msg("unknown report")
	}

	out := os.Stdout
	if *fOut != "" {
		f, err := os.Create(*fOut)
		if err != nil {
			l.Fatal().Err(err).Str("path", *fOut).Msg("cannot create output file")
		}
		defer f.Close()
		out = f
	}

	switch *fFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			l.Fatal().Err(err).Msg("json encode failed")
		}
	case "csv":
		if err := writeCSV(out, tbl); err != nil {
			l.Fatal().Err(err).Msg("csv write failed")
		}
	default:
		printTable(out, tbl)
	}
}

func exitIf(l *logger.Logger, err error, msg string) {
	if err != nil {
		l.Fatal().Err(err).Msg(msg)
	}
}
