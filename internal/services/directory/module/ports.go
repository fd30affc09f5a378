package module

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/directory/domain"
	dirsvc "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/directory/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptDirectoryPort struct{ svc dirsvc.Service }

// Resident returns one resident by id
func (a adaptDirectoryPort) Resident(ctx context.Context, id int64) (domain.Resident, error) {
	return a.svc.Resident(ctx, id)
}

// Residents returns all registered residents
func (a adaptDirectoryPort) Residents(ctx context.Context) ([]domain.Resident, error) {
	return a.svc.Residents(ctx)
}

// Categories returns all service categories
func (a adaptDirectoryPort) Categories(ctx context.Context) ([]domain.Category, error) {
	return a.svc.Categories(ctx)
}

// Wards returns the distinct wards with resident counts
func (a adaptDirectoryPort) Wards(ctx context.Context) ([]domain.Ward, error) {
	return a.svc.Wards(ctx)
}
