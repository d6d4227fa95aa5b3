package reconcile

import (
	"testing"
	"time"

	"sirtis/internal/domain/models"
)

func TestBuildFolderPath(t *testing.T) {
	tests := []struct {
		name string
		res  Resolution
		want string
	}{
		{
			name: "department and category",
			res:  Resolution{DepartmentName: "Finance", CategoryDisplay: "General Document"},
			want: "Finance/General Document",
		},
		{
			name: "sub-unit inserted between",
			res:  Resolution{DepartmentName: "Finance", SubUnitName: strPtr("Payroll"), CategoryDisplay: "Reports"},
			want: "Finance/Payroll/Reports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFolderPath(&tt.res); got != tt.want {
				t.Errorf("buildFolderPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFinalize_FlagsChangedDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := models.Document{
		ID:             "d1",
		DepartmentName: "Unknown Department",
		FolderPath:     "Unknown Department/General Document",
	}
	res := Resolution{
		DocumentID:      "d1",
		DepartmentName:  "Finance",
		Category:        models.CategoryOther,
		CategoryDisplay: "General Document",
	}

	finalize(&doc, &res, now)

	if !res.Changed {
		t.Fatal("Changed = false, want true")
	}
	if res.FolderPath != "Finance/General Document" {
		t.Errorf("FolderPath = %q, want %q", res.FolderPath, "Finance/General Document")
	}
	if got := res.mergedMetadata.StringValue("reconciledAt"); got != "2026-03-01T12:00:00Z" {
		t.Errorf("reconciledAt = %q, want %q", got, "2026-03-01T12:00:00Z")
	}
	if got := res.mergedMetadata.StringValue("department"); got != "Finance" {
		t.Errorf("metadata department = %q, want %q", got, "Finance")
	}
}

// A document whose stored state already matches its resolution must not
// be flagged again, even though the clock has moved since the run that
// stamped it. This is what makes a second pass report zero updates.
func TestFinalize_AlreadyReconciledIsUnchanged(t *testing.T) {
	cat := models.CategoryReport
	doc := models.Document{
		ID:             "d1",
		DepartmentName: "Finance",
		Category:       &cat,
		FolderPath:     "Finance/Payroll/Reports",
		CustomMetadata: models.Metadata{
			"department":      "Finance",
			"subunit":         "Payroll",
			"categoryDisplay": "Reports",
			"reconciledAt":    "2026-01-15T09:30:00Z",
		},
	}
	res := Resolution{
		DocumentID:      "d1",
		DepartmentName:  "Finance",
		SubUnitName:     strPtr("Payroll"),
		Category:        models.CategoryReport,
		CategoryDisplay: "Reports",
	}

	finalize(&doc, &res, time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC))

	if res.Changed {
		t.Fatal("Changed = true, want false")
	}
	if got := res.mergedMetadata.StringValue("reconciledAt"); got != "2026-01-15T09:30:00Z" {
		t.Errorf("reconciledAt = %q, want original stamp %q", got, "2026-01-15T09:30:00Z")
	}
}

func TestFinalize_PersonalFlagForcesUpdate(t *testing.T) {
	cat := models.CategoryOther
	doc := models.Document{
		ID:             "d1",
		DepartmentName: "Finance",
		Category:       &cat,
		FolderPath:     "Finance/General Document",
		IsPersonal:     true,
		CustomMetadata: models.Metadata{
			"department":      "Finance",
			"subunit":         nil,
			"categoryDisplay": "General Document",
		},
	}
	res := Resolution{
		DocumentID:      "d1",
		DepartmentName:  "Finance",
		Category:        models.CategoryOther,
		CategoryDisplay: "General Document",
	}

	finalize(&doc, &res, time.Now())

	if !res.Changed {
		t.Error("Changed = false, want true for personal-repository document")
	}
}

func TestFinalize_PreservesUnrelatedMetadata(t *testing.T) {
	doc := models.Document{
		ID:             "d1",
		DepartmentName: "unknown",
		CustomMetadata: models.Metadata{"projectCode": "X-42"},
	}
	res := Resolution{
		DocumentID:      "d1",
		DepartmentName:  "General",
		Category:        models.CategoryOther,
		CategoryDisplay: "General Document",
	}

	finalize(&doc, &res, time.Now())

	if got := res.mergedMetadata.StringValue("projectCode"); got != "X-42" {
		t.Errorf("projectCode = %q, want preserved %q", got, "X-42")
	}
	if doc.CustomMetadata.StringValue("department") != "" {
		t.Error("finalize mutated the source document's metadata")
	}
}
