package repositories

import (
	"context"

	"sirtis/internal/domain/models"
)

// DocumentRepository provides access to document metadata records.
type DocumentRepository interface {
	// ListAll returns every document with the reconciliation projection.
	// The reconciler is a maintenance operation over the full corpus, so
	// there is no pagination.
	ListAll(ctx context.Context) ([]models.Document, error)

	// ListByDepartment returns documents whose declared department name
	// matches (case-insensitive). An empty name returns everything.
	ListByDepartment(ctx context.Context, department string) ([]models.Document, error)

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// Create inserts a new document metadata record
	Create(ctx context.Context, doc *models.Document) error

	// UpdateDeclared updates the user-editable declared fields
	UpdateDeclared(ctx context.Context, id string, department *string, category *models.DocumentCategory) (*models.Document, error)

	// ApplyReconciliation writes the resolved fields for one document and
	// clears its personal-repository flag. Intended to run inside the
	// reconciler's write transaction.
	ApplyReconciliation(ctx context.Context, update *models.DocumentUpdate) error
}
