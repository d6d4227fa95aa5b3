package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
)

// Snapshot is the full set of reference data a reconciliation pass
// resolves against. Loaded once up front; resolution itself never
// touches the database.
type Snapshot struct {
	Documents    []models.Document
	Departments  []models.Department
	Users        []models.User
	Employees    []models.Employee
	AuditEntries []models.AuditEntry
}

// Loader fetches the reference snapshot. Pure read, no side effects;
// any failure aborts the whole pass before a single write happens.
type Loader struct {
	docRepo   repositories.DocumentRepository
	deptRepo  repositories.DepartmentRepository
	userRepo  repositories.UserRepository
	empRepo   repositories.EmployeeRepository
	auditRepo repositories.AuditRepository
	logger    *slog.Logger
}

// NewLoader creates a new snapshot loader
func NewLoader(
	docRepo repositories.DocumentRepository,
	deptRepo repositories.DepartmentRepository,
	userRepo repositories.UserRepository,
	empRepo repositories.EmployeeRepository,
	auditRepo repositories.AuditRepository,
	logger *slog.Logger,
) *Loader {
	return &Loader{
		docRepo:   docRepo,
		deptRepo:  deptRepo,
		userRepo:  userRepo,
		empRepo:   empRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Load fetches the full corpus. This is a maintenance operation, so
// there is no pagination: every document, department, user, employee,
// and creation-audit entry is read in one pass.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	documents, err := l.docRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	departments, err := l.deptRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}

	users, err := l.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	employees, err := l.empRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	auditEntries, err := l.auditRepo.ListCreationEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load creation audit entries: %w", err)
	}

	l.logger.Debug("reference snapshot loaded",
		"documents", len(documents),
		"departments", len(departments),
		"users", len(users),
		"employees", len(employees),
		"audit_entries", len(auditEntries),
	)

	return &Snapshot{
		Documents:    documents,
		Departments:  departments,
		Users:        users,
		Employees:    employees,
		AuditEntries: auditEntries,
	}, nil
}
