package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sirtis/internal/config"
	"sirtis/internal/domain"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
	"sirtis/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// departmentService implements the DepartmentService interface
type departmentService struct {
	deptRepo repositories.DepartmentRepository
	logger   *slog.Logger
}

// NewDepartmentService creates a new department service
func NewDepartmentService(deptRepo repositories.DepartmentRepository, logger *slog.Logger) services.DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		logger:   logger,
	}
}

// ListDepartments returns every department node, flat
func (s *departmentService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.deptRepo.ListAll(ctx)
}

// GetDepartmentTree groups sub-units under their top-level parents.
// Sub-units whose parent row is missing are surfaced as top-level nodes
// rather than dropped, matching how the reconciler treats them.
func (s *departmentService) GetDepartmentTree(ctx context.Context) ([]models.DepartmentNode, error) {
	departments, err := s.deptRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]bool, len(departments))
	for _, dept := range departments {
		byID[dept.ID] = true
	}

	nodes := make([]models.DepartmentNode, 0)
	nodeIndex := make(map[string]int)
	for _, dept := range departments {
		if dept.IsSubUnit() && byID[*dept.ParentID] {
			continue
		}
		nodeIndex[dept.ID] = len(nodes)
		nodes = append(nodes, models.DepartmentNode{Department: dept})
	}
	for _, dept := range departments {
		if !dept.IsSubUnit() {
			continue
		}
		if i, ok := nodeIndex[*dept.ParentID]; ok {
			nodes[i].SubUnits = append(nodes[i].SubUnits, dept)
		}
	}

	return nodes, nil
}

// CreateDepartment adds a department or sub-unit. The hierarchy is two
// levels deep: a sub-unit's parent must itself be top-level.
func (s *departmentService) CreateDepartment(ctx context.Context, req *services.CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.deptRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent: %w", err)
		}
		if parent.IsSubUnit() {
			return nil, fmt.Errorf("%w: parent %q is a sub-unit; sub-units cannot be nested", domain.ErrValidation, parent.Name)
		}
	} else {
		req.ParentID = nil
	}

	dept := &models.Department{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		ParentID: req.ParentID,
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	s.logger.Info("department created",
		"department_id", dept.ID,
		"name", dept.Name,
		"sub_unit", dept.IsSubUnit(),
	)
	return s.deptRepo.GetByID(ctx, dept.ID)
}

// validateCreateRequest validates a create department request
func (s *departmentService) validateCreateRequest(req *services.CreateDepartmentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDepartmentNameLength),
			validation.By(validateDepartmentName),
		),
	)
}

// validateDepartmentName rejects names that would corrupt folder paths.
func validateDepartmentName(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("name must be a string")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("name cannot contain '/'")
	}
	return nil
}
