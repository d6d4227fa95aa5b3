package repositories

import (
	"context"

	"sirtis/internal/domain/models"
)

// FolderAggregateRepository maintains the derived per-path aggregate index.
type FolderAggregateRepository interface {
	// ListActive returns the active aggregate rows ordered by path.
	ListActive(ctx context.Context) ([]models.FolderAggregate, error)

	// Upsert inserts or updates the aggregate row keyed by its path.
	Upsert(ctx context.Context, agg *models.FolderAggregate) error

	// DeactivateExcept marks inactive every aggregate row whose path is
	// not in keep. Called at the end of the rebuild so stale paths stop
	// appearing without losing their history.
	DeactivateExcept(ctx context.Context, keep []string) error
}
