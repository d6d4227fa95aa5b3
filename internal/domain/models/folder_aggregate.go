package models

import "time"

// FolderAggregate is a derived cache row: one per distinct canonical
// folder path, summarizing the documents grouped under it. Entirely
// rebuilt by each commit-mode reconciliation run and never mutated
// elsewhere. After a successful run, DocumentCount equals the number of
// documents whose resolved folder path matches Path.
type FolderAggregate struct {
	ID             string    `json:"id"`
	Path           string    `json:"path"`
	DepartmentName string    `json:"department"`
	CategoryLabel  string    `json:"category_label"`
	DocumentCount  int       `json:"document_count"`
	Metadata       Metadata  `json:"metadata,omitempty"`
	Active         bool      `json:"active"`
	UpdatedAt      time.Time `json:"updated_at"`
}
