package reconcile

import (
	"testing"

	"sirtis/internal/domain/models"
)

func TestBuildIndexes_DepartmentHierarchy(t *testing.T) {
	idx := buildIndexes(testSnapshot())

	if _, ok := idx.topLevelByName["finance"]; !ok {
		t.Error("topLevelByName missing finance")
	}
	sub, ok := idx.subUnitByName["payroll"]
	if !ok {
		t.Fatal("subUnitByName missing payroll")
	}
	if sub.ParentName != "Finance" {
		t.Errorf("ParentName = %q, want %q", sub.ParentName, "Finance")
	}
	if _, ok := idx.topLevelByName["payroll"]; ok {
		t.Error("sub-unit must not appear in the top-level index")
	}
}

func TestBuildIndexes_OrphanSubUnitKeepsOwnName(t *testing.T) {
	snap := &Snapshot{
		Departments: []models.Department{
			{ID: "dept-x", Name: "Archives", ParentID: strPtr("dept-missing")},
		},
	}
	idx := buildIndexes(snap)

	sub, ok := idx.subUnitByName["archives"]
	if !ok {
		t.Fatal("subUnitByName missing archives")
	}
	if sub.ParentName != "Archives" {
		t.Errorf("ParentName = %q, want own name %q", sub.ParentName, "Archives")
	}
}

func TestBuildIndexes_FirstRowWinsOnDuplicateKeys(t *testing.T) {
	snap := &Snapshot{
		Users: []models.User{
			{ID: "u1", Email: "dup@org.example"},
			{ID: "u2", Email: "DUP@org.example"},
		},
		Employees: []models.Employee{
			{ID: "e1", FirstName: "Ana", LastName: "Cruz"},
			{ID: "e2", FirstName: "ana", LastName: "cruz"},
		},
	}
	idx := buildIndexes(snap)

	if got := idx.userByEmail["dup@org.example"]; got == nil || got.ID != "u1" {
		t.Errorf("userByEmail kept %v, want u1", got)
	}
	if got := idx.employeeByFullName["ana cruz"]; got == nil || got.ID != "e1" {
		t.Errorf("employeeByFullName kept %v, want e1", got)
	}
}

func TestBuildIndexes_SkipsEmptyKeys(t *testing.T) {
	snap := &Snapshot{
		Users: []models.User{
			{ID: "u1", Email: "   "},
		},
		Employees: []models.Employee{
			{ID: "e1", UserID: strPtr("")},
		},
	}
	idx := buildIndexes(snap)

	if len(idx.userByEmail) != 0 {
		t.Errorf("userByEmail has %d entries, want 0", len(idx.userByEmail))
	}
	if len(idx.userByFullName) != 0 {
		t.Errorf("userByFullName has %d entries, want 0", len(idx.userByFullName))
	}
	if len(idx.employeeByUserID) != 0 {
		t.Errorf("employeeByUserID has %d entries, want 0", len(idx.employeeByUserID))
	}
}

func TestBuildIndexes_EarliestAuditActorWins(t *testing.T) {
	snap := &Snapshot{
		AuditEntries: []models.AuditEntry{
			{ID: "a1", DocumentID: "doc-1", ActorID: "", Action: models.AuditActionDocumentCreate},
			{ID: "a2", DocumentID: "doc-1", ActorID: "user-first", Action: models.AuditActionDocumentCreate},
			{ID: "a3", DocumentID: "doc-1", ActorID: "user-later", Action: models.AuditActionDocumentUpload},
		},
	}
	idx := buildIndexes(snap)

	if got := idx.auditActorByDocumentID["doc-1"]; got != "user-first" {
		t.Errorf("auditActorByDocumentID = %q, want %q", got, "user-first")
	}
}
