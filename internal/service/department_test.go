package service

import (
	"context"
	"errors"
	"testing"

	"sirtis/internal/domain"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/services"
)

type stubDepartmentRepo struct {
	depts []models.Department
}

func (s *stubDepartmentRepo) ListAll(ctx context.Context) ([]models.Department, error) {
	return s.depts, nil
}

func (s *stubDepartmentRepo) GetByID(ctx context.Context, id string) (*models.Department, error) {
	for i := range s.depts {
		if s.depts[i].ID == id {
			return &s.depts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubDepartmentRepo) Create(ctx context.Context, dept *models.Department) error {
	s.depts = append(s.depts, *dept)
	return nil
}

func orgFixture() []models.Department {
	fin := "dept-fin"
	return []models.Department{
		{ID: "dept-fin", Name: "Finance"},
		{ID: "dept-pay", Name: "Payroll", ParentID: &fin},
		{ID: "dept-eng", Name: "Engineering"},
	}
}

func TestDepartmentService_GetDepartmentTree(t *testing.T) {
	svc := NewDepartmentService(&stubDepartmentRepo{depts: orgFixture()}, testLogger())

	nodes, err := svc.GetDepartmentTree(context.Background())
	if err != nil {
		t.Fatalf("GetDepartmentTree() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}

	var finance *models.DepartmentNode
	for i := range nodes {
		if nodes[i].Name == "Finance" {
			finance = &nodes[i]
		}
	}
	if finance == nil {
		t.Fatal("Finance node missing")
	}
	if len(finance.SubUnits) != 1 || finance.SubUnits[0].Name != "Payroll" {
		t.Errorf("Finance sub-units = %v, want [Payroll]", finance.SubUnits)
	}
}

func TestDepartmentService_GetDepartmentTree_OrphanSubUnitSurfaces(t *testing.T) {
	missing := "dept-gone"
	repo := &stubDepartmentRepo{depts: []models.Department{
		{ID: "dept-x", Name: "Archives", ParentID: &missing},
	}}
	svc := NewDepartmentService(repo, testLogger())

	nodes, err := svc.GetDepartmentTree(context.Background())
	if err != nil {
		t.Fatalf("GetDepartmentTree() error = %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "Archives" {
		t.Errorf("nodes = %v, want orphan Archives as top-level", nodes)
	}
}

func TestDepartmentService_CreateDepartment(t *testing.T) {
	repo := &stubDepartmentRepo{depts: orgFixture()}
	svc := NewDepartmentService(repo, testLogger())

	fin := "dept-fin"
	dept, err := svc.CreateDepartment(context.Background(), &services.CreateDepartmentRequest{
		Name:     "Accounts Payable",
		ParentID: &fin,
	})
	if err != nil {
		t.Fatalf("CreateDepartment() error = %v", err)
	}
	if !dept.IsSubUnit() {
		t.Error("created department is not a sub-unit")
	}
}

func TestDepartmentService_CreateDepartment_Rejections(t *testing.T) {
	pay := "dept-pay"
	tests := []struct {
		name string
		req  services.CreateDepartmentRequest
	}{
		{name: "empty name", req: services.CreateDepartmentRequest{Name: "   "}},
		{name: "slash in name", req: services.CreateDepartmentRequest{Name: "HR/Legal"}},
		{name: "nesting under a sub-unit", req: services.CreateDepartmentRequest{Name: "Benefits", ParentID: &pay}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDepartmentService(&stubDepartmentRepo{depts: orgFixture()}, testLogger())
			_, err := svc.CreateDepartment(context.Background(), &tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}
