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

// PostgresAuditRepository implements the AuditRepository interface
type PostgresAuditRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(config *RepositoryConfig) repositories.AuditRepository {
	return &PostgresAuditRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListCreationEntries returns creation/upload audit entries, oldest first.
// The ordering matters: the reconciler attributes a document to the
// earliest recorded creation actor.
func (r *PostgresAuditRepository) ListCreationEntries(ctx context.Context) ([]models.AuditEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, actor_id, action, created_at
		FROM %s
		WHERE action = ANY($1)
		ORDER BY created_at, id
	`, r.tables.AuditLog)

	actions := []string{models.AuditActionDocumentCreate, models.AuditActionDocumentUpload}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, actions)
	if err != nil {
		return nil, fmt.Errorf("list creation audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.DocumentID, &entry.ActorID, &entry.Action, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}

// Record appends an audit entry
func (r *PostgresAuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, actor_id, action, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, r.tables.AuditLog)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.ID,
		entry.DocumentID,
		entry.ActorID,
		entry.Action,
		time.Now().UTC(),
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	return nil
}
