package models

// DocumentCategory classifies a document within the repository.
// The set is closed: values outside it are normalized to CategoryOther
// before they reach persistence.
type DocumentCategory string

const (
	CategoryPolicy         DocumentCategory = "POLICY"
	CategoryProcedure      DocumentCategory = "PROCEDURE"
	CategoryForm           DocumentCategory = "FORM"
	CategoryReport         DocumentCategory = "REPORT"
	CategoryContract       DocumentCategory = "CONTRACT"
	CategoryCorrespondence DocumentCategory = "CORRESPONDENCE"
	CategoryTraining       DocumentCategory = "TRAINING"
	CategoryOther          DocumentCategory = "OTHER"
)

// AllCategories lists every valid category, in display order.
var AllCategories = []DocumentCategory{
	CategoryPolicy,
	CategoryProcedure,
	CategoryForm,
	CategoryReport,
	CategoryContract,
	CategoryCorrespondence,
	CategoryTraining,
	CategoryOther,
}

// IsValid reports whether c is one of the closed category values.
func (c DocumentCategory) IsValid() bool {
	switch c {
	case CategoryPolicy, CategoryProcedure, CategoryForm, CategoryReport,
		CategoryContract, CategoryCorrespondence, CategoryTraining, CategoryOther:
		return true
	}
	return false
}

// DisplayName returns the human-readable folder label for a category.
// Exhaustive over the closed enum; anything else falls back to the
// generic document label.
func (c DocumentCategory) DisplayName() string {
	switch c {
	case CategoryPolicy, CategoryProcedure:
		return "Policies & Procedures"
	case CategoryForm:
		return "Forms & Templates"
	case CategoryReport:
		return "Reports"
	case CategoryContract:
		return "Contracts & Agreements"
	case CategoryCorrespondence:
		return "Correspondence"
	case CategoryTraining:
		return "Training Materials"
	case CategoryOther:
		return "General Document"
	default:
		return "General Document"
	}
}

// NormalizeCategory maps a nullable declared category to a closed enum
// value, defaulting to CategoryOther for nil or unrecognized input.
func NormalizeCategory(c *DocumentCategory) DocumentCategory {
	if c == nil || !c.IsValid() {
		return CategoryOther
	}
	return *c
}
