package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
)

// PostgresFolderAggregateRepository implements the FolderAggregateRepository interface
type PostgresFolderAggregateRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderAggregateRepository creates a new folder aggregate repository
func NewFolderAggregateRepository(config *RepositoryConfig) repositories.FolderAggregateRepository {
	return &PostgresFolderAggregateRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListActive returns the active aggregate rows ordered by path
func (r *PostgresFolderAggregateRepository) ListActive(ctx context.Context) ([]models.FolderAggregate, error) {
	query := fmt.Sprintf(`
		SELECT id, path, department, category_label, document_count,
			COALESCE(metadata, '{}'::jsonb), active, updated_at
		FROM %s
		WHERE active = TRUE
		ORDER BY path
	`, r.tables.FolderAggregates)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list folder aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []models.FolderAggregate
	for rows.Next() {
		var agg models.FolderAggregate
		if err := rows.Scan(&agg.ID, &agg.Path, &agg.DepartmentName, &agg.CategoryLabel,
			&agg.DocumentCount, &agg.Metadata, &agg.Active, &agg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan folder aggregate: %w", err)
		}
		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder aggregates: %w", err)
	}

	return aggs, nil
}

// Upsert inserts or updates the aggregate row keyed by its path
func (r *PostgresFolderAggregateRepository) Upsert(ctx context.Context, agg *models.FolderAggregate) error {
	if agg.ID == "" {
		agg.ID = uuid.NewString()
	}
	metadata := agg.Metadata
	if metadata == nil {
		metadata = models.Metadata{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, path, department, category_label, document_count, metadata, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (path) DO UPDATE SET
			department = EXCLUDED.department,
			category_label = EXCLUDED.category_label,
			document_count = EXCLUDED.document_count,
			metadata = EXCLUDED.metadata,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
		RETURNING id, updated_at
	`, r.tables.FolderAggregates)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		agg.ID,
		agg.Path,
		agg.DepartmentName,
		agg.CategoryLabel,
		agg.DocumentCount,
		metadata,
		agg.Active,
		time.Now().UTC(),
	).Scan(&agg.ID, &agg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert folder aggregate %q: %w", agg.Path, err)
	}

	return nil
}

// DeactivateExcept marks inactive every aggregate row whose path is not in keep
func (r *PostgresFolderAggregateRepository) DeactivateExcept(ctx context.Context, keep []string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET active = FALSE, updated_at = $2
		WHERE active = TRUE AND NOT (path = ANY($1))
	`, r.tables.FolderAggregates)

	if keep == nil {
		keep = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, keep, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate stale folder aggregates: %w", err)
	}

	return nil
}
