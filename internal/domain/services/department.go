package services

import (
	"context"

	"sirtis/internal/domain/models"
)

// CreateDepartmentRequest is a request to add a department node. A
// non-nil ParentID creates a sub-unit.
type CreateDepartmentRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// DepartmentService manages the organizational hierarchy
type DepartmentService interface {
	// ListDepartments returns every department node, flat
	ListDepartments(ctx context.Context) ([]models.Department, error)

	// GetDepartmentTree returns top-level departments with their sub-units
	GetDepartmentTree(ctx context.Context) ([]models.DepartmentNode, error)

	// CreateDepartment adds a department or sub-unit
	CreateDepartment(ctx context.Context, req *CreateDepartmentRequest) (*models.Department, error)
}

// FolderService exposes the derived folder aggregate index.
type FolderService interface {
	// ListFolders returns the active folder aggregates ordered by path
	ListFolders(ctx context.Context) ([]models.FolderAggregate, error)
}
