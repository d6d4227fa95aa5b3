package models

import "time"

// Document is a stored file's metadata record. Binary content lives in
// the file store, which this service never touches; reconciliation only
// mutates the ownership and classification fields.
type Document struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	DepartmentName string            `json:"department"`
	DepartmentID   *string           `json:"department_id,omitempty"`
	Category       *DocumentCategory `json:"category,omitempty"`
	FolderPath     string            `json:"folder_path"`
	CustomMetadata Metadata          `json:"custom_metadata,omitempty"`
	UploadedBy     string            `json:"uploaded_by"`
	IsPersonal     bool              `json:"is_personal"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// DocumentUpdate carries the per-document fields written by a commit-mode
// reconciliation run. DepartmentID is left untouched when nil.
type DocumentUpdate struct {
	ID             string
	DepartmentName string
	DepartmentID   *string
	Category       DocumentCategory
	FolderPath     string
	CustomMetadata Metadata
}
