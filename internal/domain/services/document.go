package services

import (
	"context"

	"sirtis/internal/domain/models"
)

// CreateDocumentRequest is a request to register a document's metadata.
// UploadedBy and ActorID are stamped from the authenticated identity,
// never taken from the request body.
type CreateDocumentRequest struct {
	Title          string                   `json:"title"`
	Department     string                   `json:"department"`
	Category       *models.DocumentCategory `json:"category"`
	CustomMetadata models.Metadata          `json:"custom_metadata"`
	IsPersonal     bool                     `json:"is_personal"`
	UploadedBy     string                   `json:"-"`
	ActorID        string                   `json:"-"`
}

// UpdateDocumentRequest patches a document's declared fields. Nil fields
// are left unchanged.
type UpdateDocumentRequest struct {
	Department *string                  `json:"department"`
	Category   *models.DocumentCategory `json:"category"`
}

// DocumentService manages document metadata records
type DocumentService interface {
	// ListDocuments returns documents, optionally filtered by declared
	// department name (case-insensitive).
	ListDocuments(ctx context.Context, department string) ([]models.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// CreateDocument registers a new document metadata record and logs a
	// creation audit entry.
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// UpdateDocument patches the declared department and category
	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error)
}
