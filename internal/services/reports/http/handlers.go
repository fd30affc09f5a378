// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/httpkit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/domain"
	svc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/reports/service"
)

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// per complaint derived records
	httpkit.Post(r, "/overview", h.overview)

	// ranked groupings
	httpkit.PostJSON[domain.VolumeInput](r, "/volume", h.volume)
	httpkit.PostJSON[domain.TurnaroundInput](r, "/turnaround", h.turnaround)

	// status time analysis
	httpkit.PostJSON[domain.DwellInput](r, "/dwell", h.dwell)
	httpkit.PostJSON[domain.MixInput](r, "/status-mix", h.statusMix)

	// per group mixes
	httpkit.PostJSON[domain.PerformanceInput](r, "/ward-performance", h.wardPerformance)
	httpkit.PostJSON[domain.PerformanceInput](r, "/category-resolution", h.categoryResolution)

	// operational reports
	httpkit.PostJSON[domain.OverdueInput](r, "/overdue", h.overdue)
	httpkit.PostJSON[domain.TrendsInput](r, "/trends", h.trends)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /reports/overview Reports reportsOverview
// @Summary Per complaint derived lifecycle records
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.Overview "ok"
// @Router /reports/overview [post]
func (h *handlers) overview(r *stdhttp.Request) (any, error) {
	return h.svc.Overview(r.Context())
}

// swagger:route POST /reports/volume Reports reportsVolume
// @Summary Complaint counts by dimension with share of total
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.VolumeInput true "Query"
// @Success 200 {object} domain.Volume "ok"
// @Router /reports/volume [post]
func (h *handlers) volume(r *stdhttp.Request, in domain.VolumeInput) (any, error) {
	return h.svc.Volume(r.Context(), in)
}

// swagger:route POST /reports/turnaround Reports reportsTurnaround
// @Summary Mean turnaround days by dimension
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.TurnaroundInput true "Query"
// @Success 200 {object} domain.Turnaround "ok"
// @Router /reports/turnaround [post]
func (h *handlers) turnaround(r *stdhttp.Request, in domain.TurnaroundInput) (any, error) {
	return h.svc.Turnaround(r.Context(), in)
}

// swagger:route POST /reports/dwell Reports reportsDwell
// @Summary Time in status summary
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.DwellInput true "Query"
// @Success 200 {object} domain.Dwell "ok"
// @Router /reports/dwell [post]
func (h *handlers) dwell(r *stdhttp.Request, in domain.DwellInput) (any, error) {
	return h.svc.Dwell(r.Context(), in)
}

// swagger:route POST /reports/status-mix Reports reportsStatusMix
// @Summary Totals per current status with resolution rate
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.MixInput true "Query"
// @Success 200 {object} domain.MixReport "ok"
// @Router /reports/status-mix [post]
func (h *handlers) statusMix(r *stdhttp.Request, in domain.MixInput) (any, error) {
	return h.svc.StatusMix(r.Context(), in)
}

// swagger:route POST /reports/ward-performance Reports reportsWardPerformance
// @Summary Status mix per ward, busiest first
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.PerformanceInput true "Query"
// @Success 200 {object} domain.Performance "ok"
// @Router /reports/ward-performance [post]
func (h *handlers) wardPerformance(r *stdhttp.Request, in domain.PerformanceInput) (any, error) {
	return h.svc.WardPerformance(r.Context(), in)
}

// swagger:route POST /reports/category-resolution Reports reportsCategoryResolution
// @Summary Status mix per category, busiest first
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.PerformanceInput true "Query"
// @Success 200 {object} domain.Performance "ok"
// @Router /reports/category-resolution [post]
func (h *handlers) categoryResolution(r *stdhttp.Request, in domain.PerformanceInput) (any, error) {
	return h.svc.CategoryResolution(r.Context(), in)
}

// swagger:route POST /reports/overdue Reports reportsOverdue
// @Summary Active complaints older than the threshold, oldest first
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.OverdueInput true "Query"
// @Success 200 {object} domain.Overdue "ok"
// @Router /reports/overdue [post]
func (h *handlers) overdue(r *stdhttp.Request, in domain.OverdueInput) (any, error) {
	return h.svc.Overdue(r.Context(), in)
}

// swagger:route POST /reports/trends Reports reportsTrends
// @Summary Monthly complaint trends from the rollup or computed live
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.TrendsInput true "Query"
// @Success 200 {object} domain.Trends "ok"
// @Router /reports/trends [post]
func (h *handlers) trends(r *stdhttp.Request, in domain.TrendsInput) (any, error) {
	return h.svc.Trends(r.Context(), in)
}
