package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"sirtis/internal/domain"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
)

// PostgresDepartmentRepository implements the DepartmentRepository interface
type PostgresDepartmentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(config *RepositoryConfig) repositories.DepartmentRepository {
	return &PostgresDepartmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListAll returns every department, top-level and sub-unit alike
func (r *PostgresDepartmentRepository) ListAll(ctx context.Context) ([]models.Department, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, created_at
		FROM %s
		ORDER BY name, id
	`, r.tables.Departments)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var depts []models.Department
	for rows.Next() {
		var dept models.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.ParentID, &dept.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		depts = append(depts, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}

	return depts, nil
}

// GetByID retrieves a department by ID
func (r *PostgresDepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Departments)

	var dept models.Department
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&dept.ID, &dept.Name, &dept.ParentID, &dept.CreatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("department %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get department: %w", err)
	}

	return &dept, nil
}

// Create inserts a new department node
func (r *PostgresDepartmentRepository) Create(ctx context.Context, dept *models.Department) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, parent_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.Departments)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, dept.ID, dept.Name, dept.ParentID, time.Now().UTC()).Scan(&dept.CreatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("department %q already exists", dept.Name),
				ResourceType: "department",
				ResourceID:   dept.ID,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("%w: parent department does not exist", domain.ErrValidation)
		}
		return fmt.Errorf("create department: %w", err)
	}

	return nil
}
