package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Resident(ctx context.Context, id int64) (Resident, error)
	Residents(ctx context.Context) ([]Resident, error)
	Categories(ctx context.Context) ([]Category, error)
	Wards(ctx context.Context) ([]Ward, error)
}
