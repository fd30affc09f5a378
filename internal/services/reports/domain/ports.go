package domain

import "context"

// ServicePort is consumed by handlers and the offline report tool
type ServicePort interface {
	Overview(ctx context.Context) (Overview, error)
	Volume(ctx context.Context, in VolumeInput) (Volume, error)
	Turnaround(ctx context.Context, in TurnaroundInput) (Turnaround, error)
	Dwell(ctx context.Context, in DwellInput) (Dwell, error)
	StatusMix(ctx context.Context, in MixInput) (MixReport, error)
	WardPerformance(ctx context.Context, in PerformanceInput) (Performance, error)
	CategoryResolution(ctx context.Context, in PerformanceInput) (Performance, error)
	Overdue(ctx context.Context, in OverdueInput) (Overdue, error)
	Trends(ctx context.Context, in TrendsInput) (Trends, error)
}
