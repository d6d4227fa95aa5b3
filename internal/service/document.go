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

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   repositories.DocumentRepository
	auditRepo repositories.AuditRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	auditRepo repositories.AuditRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListDocuments returns documents, filtered by declared department when
// one is given.
func (s *documentService) ListDocuments(ctx context.Context, department string) ([]models.Document, error) {
	if strings.TrimSpace(department) == "" {
		return s.docRepo.ListAll(ctx)
	}
	return s.docRepo.ListByDepartment(ctx, department)
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrValidation)
	}
	return s.docRepo.GetByID(ctx, id)
}

// CreateDocument registers a document metadata record and its creation
// audit entry in one transaction, so the reconciler's audit-actor signal
// exists for every document this service created.
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc := &models.Document{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(req.Title),
		DepartmentName: strings.TrimSpace(req.Department),
		Category:       req.Category,
		CustomMetadata: req.CustomMetadata,
		UploadedBy:     req.UploadedBy,
		IsPersonal:     req.IsPersonal,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}
		return s.auditRepo.Record(txCtx, &models.AuditEntry{
			DocumentID: doc.ID,
			ActorID:    req.ActorID,
			Action:     models.AuditActionDocumentUpload,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"document_id", doc.ID,
		"department", doc.DepartmentName,
	)
	return s.docRepo.GetByID(ctx, doc.ID)
}

// UpdateDocument patches the declared department and category
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrValidation)
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return s.docRepo.UpdateDeclared(ctx, id, req.Department, req.Category)
}

// validateCreateRequest validates a create document request
func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxDocumentTitleLength),
		),
		validation.Field(&req.Department,
			validation.Length(0, config.MaxDepartmentNameLength),
		),
		validation.Field(&req.Category, validation.By(validateCategory)),
		validation.Field(&req.UploadedBy, validation.Required),
	)
}

// validateUpdateRequest validates an update document request
func (s *documentService) validateUpdateRequest(req *services.UpdateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Department,
			validation.Length(0, config.MaxDepartmentNameLength),
		),
		validation.Field(&req.Category, validation.By(validateCategory)),
	)
}

// validateCategory accepts a nil pointer or a known category value.
// Unknown categories are rejected at the boundary; only legacy rows get
// normalized to OTHER by the reconciler.
func validateCategory(value interface{}) error {
	cat, ok := value.(*models.DocumentCategory)
	if !ok || cat == nil {
		return nil
	}
	if !cat.IsValid() {
		return fmt.Errorf("unknown category %q", string(*cat))
	}
	return nil
}
