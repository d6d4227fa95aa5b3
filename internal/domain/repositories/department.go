package repositories

import (
	"context"

	"sirtis/internal/domain/models"
)

// DepartmentRepository provides access to the department hierarchy.
type DepartmentRepository interface {
	// ListAll returns every department, top-level and sub-unit alike.
	ListAll(ctx context.Context) ([]models.Department, error)

	// GetByID retrieves a department by ID
	GetByID(ctx context.Context, id string) (*models.Department, error)

	// Create inserts a new department node
	Create(ctx context.Context, dept *models.Department) error
}

// UserRepository provides access to authentication principals.
type UserRepository interface {
	// ListAll returns every user with the reconciliation projection.
	ListAll(ctx context.Context) ([]models.User, error)
}

// EmployeeRepository provides access to HR employee records.
type EmployeeRepository interface {
	// ListAll returns every employee with the reconciliation projection.
	ListAll(ctx context.Context) ([]models.Employee, error)
}

// AuditRepository provides access to the audit log.
type AuditRepository interface {
	// ListCreationEntries returns audit entries whose action is a
	// creation/upload action, oldest first.
	ListCreationEntries(ctx context.Context) ([]models.AuditEntry, error)

	// Record appends an audit entry
	Record(ctx context.Context, entry *models.AuditEntry) error
}
