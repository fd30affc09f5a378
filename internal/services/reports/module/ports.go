package module

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/domain"
	rptsvc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptReportsPort struct{ svc rptsvc.Service }

// Overview returns the full derived record set with its warnings
func (a adaptReportsPort) Overview(ctx context.Context) (domain.Overview, error) {
	return a.svc.Overview(ctx)
}

// Volume returns complaint counts grouped by dimension
func (a adaptReportsPort) Volume(ctx context.Context, in domain.VolumeInput) (domain.Volume, error) {
	return a.svc.Volume(ctx, in)
}

// Turnaround returns mean turnaround days grouped by dimension
func (a adaptReportsPort) Turnaround(ctx context.Context, in domain.TurnaroundInput) (domain.Turnaround, error) {
	return a.svc.Turnaround(ctx, in)
}

// Dwell returns the per status dwell summary
func (a adaptReportsPort) Dwell(ctx context.Context, in domain.DwellInput) (domain.Dwell, error) {
	return a.svc.Dwell(ctx, in)
}

// StatusMix returns totals per current status
func (a adaptReportsPort) StatusMix(ctx context.Context, in domain.MixInput) (domain.MixReport, error) {
	return a.svc.StatusMix(ctx, in)
}

// WardPerformance returns the status mix per ward
func (a adaptReportsPort) WardPerformance(ctx context.Context, in domain.PerformanceInput) (domain.Performance, error) {
	return a.svc.WardPerformance(ctx, in)
}

// CategoryResolution returns the status mix per category
func (a adaptReportsPort) CategoryResolution(ctx context.Context, in domain.PerformanceInput) (domain.Performance, error) {
	return a.svc.CategoryResolution(ctx, in)
}

// Overdue lists active complaints older than the threshold
func (a adaptReportsPort) Overdue(ctx context.Context, in domain.OverdueInput) (domain.Overdue, error) {
	return a.svc.Overdue(ctx, in)
}

// Trends returns the monthly series from the rollup or computed live
func (a adaptReportsPort) Trends(ctx context.Context, in domain.TrendsInput) (domain.Trends, error) {
	return a.svc.Trends(ctx, in)
}
