// Package service contains directory reference data workflows
package service

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/directory/domain"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/services/directory/repo"
)

// Service defines the directory service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the directory service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a directory service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("directory.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("directory.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Resident returns one resident by id
func (s *Svc) Resident(ctx context.Context, id int64) (domain.Resident, error) {
	row, err := s.Repo.Resident(ctx, id)
	if err != nil {
		return domain.Resident{}, err
	}
	return mapResident(*row), nil
}

// Residents returns all registered residents ordered by id
func (s *Svc) Residents(ctx context.Context) ([]domain.Resident, error) {
	rows, err := s.Repo.Residents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Resident, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapResident(r))
	}
	return out, nil
}

// Categories returns all service categories ordered by name
func (s *Svc) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Category{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// Wards returns the distinct wards with resident counts
func (s *Svc) Wards(ctx context.Context) ([]domain.Ward, error) {
	rows, err := s.Repo.Wards(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ward, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Ward{Ward: r.Ward, Residents: r.Residents})
	}
	return out, nil
}

func mapResident(r repo.ResidentRow) domain.Resident {
	return domain.Resident{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Ward:      r.Ward,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}
