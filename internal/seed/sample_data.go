package seed

import (
	"context"
	"fmt"
)

// Fixed ids keep reseeding idempotent across runs.
const (
	deptFinance     = "4f1c2d30-0000-4000-8000-000000000001"
	deptPayroll     = "4f1c2d30-0000-4000-8000-000000000002"
	deptEngineering = "4f1c2d30-0000-4000-8000-000000000003"
	deptHR          = "4f1c2d30-0000-4000-8000-000000000004"

	userJane = "9a77be10-0000-4000-8000-000000000001"
	userTom  = "9a77be10-0000-4000-8000-000000000002"
	userRita = "9a77be10-0000-4000-8000-000000000003"

	docBudget    = "c3d4e5f6-0000-4000-8000-000000000001"
	docTimesheet = "c3d4e5f6-0000-4000-8000-000000000002"
	docOnboard   = "c3d4e5f6-0000-4000-8000-000000000003"
	docRoadmap   = "c3d4e5f6-0000-4000-8000-000000000004"
	docOrphan    = "c3d4e5f6-0000-4000-8000-000000000005"
)

// SeedSampleData loads a small organization whose documents are in the
// states a reconciliation pass has to untangle: placeholder departments,
// missing categories, personal-repository uploads, and uploader fields
// holding emails, full names, or garbage.
func (s *Seeder) SeedSampleData(ctx context.Context) error {
	departments := []struct {
		id, name string
		parentID *string
	}{
		{deptFinance, "Finance", nil},
		{deptPayroll, "Payroll", ptr(deptFinance)},
		{deptEngineering, "Engineering", nil},
		{deptHR, "Human Resources", nil},
	}
	for _, d := range departments {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, name, parent_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, s.tables.Departments)
		if _, err := s.pool.Exec(ctx, query, d.id, d.name, d.parentID); err != nil {
			return fmt.Errorf("seed department %s: %w", d.name, err)
		}
	}

	users := []struct {
		id, email, first, last, department string
	}{
		{userJane, "jane@org.example", "Jane", "Doe", "Finance"},
		{userTom, "tom@org.example", "Tom", "Reyes", ""},
		{userRita, "rita@org.example", "Rita", "Chen", "Engineering"},
	}
	for _, u := range users {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, email, first_name, last_name, department)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, s.tables.Users)
		if _, err := s.pool.Exec(ctx, query, u.id, u.email, u.first, u.last, u.department); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	// Tom has no department on his user record; his employee row's
	// department_id reference is the only ownership signal for him.
	employees := []struct {
		userID, email, first, last, department string
		departmentID                           *string
	}{
		{userJane, "jane@org.example", "Jane", "Doe", "Finance", ptr(deptFinance)},
		{userTom, "tom@org.example", "Tom", "Reyes", "", ptr(deptPayroll)},
	}
	for _, e := range employees {
		query := fmt.Sprintf(`
			INSERT INTO %s (user_id, email, first_name, last_name, department, department_id)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM %s WHERE user_id = $1)
		`, s.tables.Employees, s.tables.Employees)
		if _, err := s.pool.Exec(ctx, query, e.userID, e.email, e.first, e.last, e.department, e.departmentID); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.email, err)
		}
	}

	documents := []struct {
		id, title, department, uploadedBy string
		category                          *string
		isPersonal                        bool
	}{
		{docBudget, "FY26 Budget Guidelines", "Unknown Department", "jane@org.example", nil, false},
		{docTimesheet, "Timesheet Corrections", "unassigned", "tom@org.example", ptr("FORM"), false},
		{docOnboard, "Onboarding Checklist", "Human Resources", "Rita Chen", ptr("PROCEDURE"), true},
		{docRoadmap, "Platform Roadmap", "Engineering", "rita@org.example", ptr("REPORT"), false},
		{docOrphan, "Scanned Fax 0042", "", "front-desk scanner", nil, false},
	}
	for _, d := range documents {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, title, department, category, uploaded_by, is_personal)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, s.tables.Documents)
		if _, err := s.pool.Exec(ctx, query, d.id, d.title, d.department, d.category, d.uploadedBy, d.isPersonal); err != nil {
			return fmt.Errorf("seed document %s: %w", d.title, err)
		}
	}

	auditEntries := []struct {
		documentID, actorID, action string
	}{
		{docBudget, userJane, "document.upload"},
		{docTimesheet, userTom, "document.upload"},
		{docOnboard, userRita, "document.create"},
		{docRoadmap, userRita, "document.upload"},
	}
	for _, a := range auditEntries {
		query := fmt.Sprintf(`
			INSERT INTO %s (document_id, actor_id, action)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM %s WHERE document_id = $1 AND action = $3)
		`, s.tables.AuditLog, s.tables.AuditLog)
		if _, err := s.pool.Exec(ctx, query, a.documentID, a.actorID, a.action); err != nil {
			return fmt.Errorf("seed audit entry for %s: %w", a.documentID, err)
		}
	}

	s.logger.Info("sample data seeded",
		"departments", len(departments),
		"users", len(users),
		"documents", len(documents),
	)
	return nil
}

func ptr(s string) *string { return &s }
