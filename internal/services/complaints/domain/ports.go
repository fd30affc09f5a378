package domain

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/core/lifecycle"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Get(ctx context.Context, id int64) (Detail, error)
	Timeline(ctx context.Context, id int64) (Timeline, error)
	List(ctx context.Context, in ListInput) ([]ListRow, error)
}

// SnapshotPort loads the full analyzer input in one scoped read
// reports and the offline report tool consume this instead of owning the SQL
type SnapshotPort interface {
	Snapshot(ctx context.Context) (lifecycle.Snapshot, error)
}
