// Package http provides http transport for directory reference data
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/httpkit"
	perr "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/errors"
	svc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/directory/service"
)

// Register mounts directory endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// resident lookup and roster
	httpkit.Get(r, "/residents", h.residents)
	httpkit.Get(r, "/residents/{id}", h.resident)

	// reference lists
	httpkit.Get(r, "/categories", h.categories)
	httpkit.Get(r, "/wards", h.wards)
}

type handlers struct{ svc svc.Service }

// idParam parses the {id} path segment
func idParam(r *stdhttp.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, perr.InvalidArgf("invalid id %q", raw)
	}
	return id, nil
}

// swagger:route GET /directory/residents/{id} Directory directoryResident
// @Summary Resident by id
// @Tags Directory
// @Produce json
// @Param id path int true "Resident id"
// @Success 200 {object} domain.Resident "ok"
// @Failure 404 {string} string "not found"
// @Router /directory/residents/{id} [get]
func (h *handlers) resident(r *stdhttp.Request) (any, error) {
	id, err := idParam(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Resident(r.Context(), id)
}

// swagger:route GET /directory/residents Directory directoryResidents
// @Summary All registered residents
// @Tags Directory
// @Produce json
// @Success 200 {array} domain.Resident "ok"
// @Router /directory/residents [get]
func (h *handlers) residents(r *stdhttp.Request) (any, error) {
	return h.svc.Residents(r.Context())
}

// swagger:route GET /directory/categories Directory directoryCategories
// @Summary All service categories
// @Tags Directory
// @Produce json
// @Success 200 {array} domain.Category "ok"
// @Router /directory/categories [get]
func (h *handlers) categories(r *stdhttp.Request) (any, error) {
	return h.svc.Categories(r.Context())
}

// swagger:route GET /directory/wards Directory directoryWards
// @Summary Distinct wards with resident counts
// @Tags Directory
// @Produce json
// @Success 200 {array} domain.Ward "ok"
// @Router /directory/wards [get]
func (h *handlers) wards(r *stdhttp.Request) (any, error) {
	return h.svc.Wards(r.Context())
}
