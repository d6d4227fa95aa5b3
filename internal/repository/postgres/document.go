package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"sirtis/internal/domain"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// documentColumns is the reconciliation projection shared by list queries.
const documentColumns = `id, title, department, department_id, category, folder_path,
	COALESCE(custom_metadata, '{}'::jsonb), uploaded_by, is_personal, created_at, updated_at`

func (r *PostgresDocumentRepository) scanDocuments(rows pgx.Rows) ([]models.Document, error) {
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		var category *string
		if err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.DepartmentName,
			&doc.DepartmentID,
			&category,
			&doc.FolderPath,
			&doc.CustomMetadata,
			&doc.UploadedBy,
			&doc.IsPersonal,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if category != nil {
			c := models.DocumentCategory(*category)
			doc.Category = &c
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// ListAll returns every document with the reconciliation projection
func (r *PostgresDocumentRepository) ListAll(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at, id
	`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return r.scanDocuments(rows)
}

// ListByDepartment returns documents declared under the given department name
func (r *PostgresDocumentRepository) ListByDepartment(ctx context.Context, department string) ([]models.Document, error) {
	if department == "" {
		return r.ListAll(ctx)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE LOWER(TRIM(department)) = LOWER(TRIM($1))
		ORDER BY created_at, id
	`, documentColumns, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("list documents by department: %w", err)
	}
	return r.scanDocuments(rows)
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	var category *string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.DepartmentName,
		&doc.DepartmentID,
		&category,
		&doc.FolderPath,
		&doc.CustomMetadata,
		&doc.UploadedBy,
		&doc.IsPersonal,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if category != nil {
		c := models.DocumentCategory(*category)
		doc.Category = &c
	}

	return &doc, nil
}

// Create inserts a new document metadata record
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, department, department_id, category, folder_path,
			custom_metadata, uploaded_by, is_personal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, r.tables.Documents)

	var category *string
	if doc.Category != nil {
		s := string(*doc.Category)
		category = &s
	}
	metadata := doc.CustomMetadata
	if metadata == nil {
		metadata = models.Metadata{}
	}
	now := time.Now().UTC()

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ID,
		doc.Title,
		doc.DepartmentName,
		doc.DepartmentID,
		category,
		doc.FolderPath,
		metadata,
		doc.UploadedBy,
		doc.IsPersonal,
		now,
		now,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document %s already exists", doc.ID),
				ResourceType: "document",
				ResourceID:   doc.ID,
			}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// UpdateDeclared updates the user-editable declared fields
func (r *PostgresDocumentRepository) UpdateDeclared(ctx context.Context, id string, department *string, category *models.DocumentCategory) (*models.Document, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET department = COALESCE($2, department),
			category = COALESCE($3, category),
			updated_at = $4
		WHERE id = $1
	`, r.tables.Documents)

	var categoryText *string
	if category != nil {
		s := string(*category)
		categoryText = &s
	}

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, department, categoryText, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// ApplyReconciliation writes the resolved fields for one document.
// DepartmentID is only overwritten when the resolver produced one; the
// personal-repository flag is always cleared because reconciliation moves
// documents into the shared namespace.
func (r *PostgresDocumentRepository) ApplyReconciliation(ctx context.Context, update *models.DocumentUpdate) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET department = $2,
			department_id = COALESCE($3, department_id),
			category = $4,
			folder_path = $5,
			custom_metadata = $6,
			is_personal = FALSE,
			updated_at = $7
		WHERE id = $1
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		update.ID,
		update.DepartmentName,
		update.DepartmentID,
		string(update.Category),
		update.FolderPath,
		update.CustomMetadata,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("apply reconciliation to document %s: %w", update.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", update.ID, domain.ErrNotFound)
	}

	return nil
}
