// Package http provides http transport for complaints
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/httpkit"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/domain"
	svc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/complaints/service"
)

// Register mounts complaints endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// detail and timeline
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Get(r, "/{id}/timeline", h.timeline)

	// filtered listings
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
}

type handlers struct{ svc svc.Service }

func idParam(r *stdhttp.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.InvalidArgf("invalid complaint id %q", raw)
	}
	return id, nil
}

// swagger:route GET /complaints/{id} Complaints complaintsGet
// @Summary Complaint detail with derived lifecycle fields
// @Tags Complaints
// @Produce json
// @Param id path int true "Complaint id"
// @Success 200 {object} domain.Detail "ok"
// @Failure 404 {string} string "not found"
// @Router /complaints/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := idParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route GET /complaints/{id}/timeline Complaints complaintsTimeline
// @Summary Full ordered status history for one complaint
// @Tags Complaints
// @Produce json
// @Param id path int true "Complaint id"
// @Success 200 {object} domain.Timeline "ok"
// @Failure 404 {string} string "not found"
// @Router /complaints/{id}/timeline [get]
func (h *handlers) timeline(r *stdhttp.Request) (any, error) {
	id, err := idParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Timeline(r.Context(), id)
}

// swagger:route POST /complaints/list Complaints complaintsList
// @Summary Filtered complaint listing, newest submission first
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.ListRow "ok"
// @Router /complaints/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}
