package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"sirtis/internal/domain"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
	"sirtis/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubDocumentRepo struct {
	docs map[string]models.Document
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[string]models.Document)}
}

func (s *stubDocumentRepo) ListAll(ctx context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (s *stubDocumentRepo) ListByDepartment(ctx context.Context, department string) ([]models.Document, error) {
	out := make([]models.Document, 0)
	for _, doc := range s.docs {
		if strings.EqualFold(strings.TrimSpace(doc.DepartmentName), strings.TrimSpace(department)) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *stubDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *stubDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	if _, exists := s.docs[doc.ID]; exists {
		return &domain.ConflictError{Message: "document already exists", ResourceType: "document", ResourceID: doc.ID}
	}
	s.docs[doc.ID] = *doc
	return nil
}

func (s *stubDocumentRepo) UpdateDeclared(ctx context.Context, id string, department *string, category *models.DocumentCategory) (*models.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if department != nil {
		doc.DepartmentName = *department
	}
	if category != nil {
		doc.Category = category
	}
	s.docs[id] = doc
	return &doc, nil
}

func (s *stubDocumentRepo) ApplyReconciliation(ctx context.Context, update *models.DocumentUpdate) error {
	return errors.New("not used")
}

type stubAuditRepo struct {
	entries []models.AuditEntry
}

func (s *stubAuditRepo) ListCreationEntries(ctx context.Context) ([]models.AuditEntry, error) {
	return s.entries, nil
}

func (s *stubAuditRepo) Record(ctx context.Context, entry *models.AuditEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func TestDocumentService_CreateDocument(t *testing.T) {
	docRepo := newStubDocumentRepo()
	auditRepo := &stubAuditRepo{}
	svc := NewDocumentService(docRepo, auditRepo, passthroughTx{}, testLogger())

	cat := models.CategoryPolicy
	doc, err := svc.CreateDocument(context.Background(), &services.CreateDocumentRequest{
		Title:      "  Expense Policy  ",
		Department: "Finance",
		Category:   &cat,
		UploadedBy: "jane@org.example",
		ActorID:    "user-jane",
	})
	if err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}

	if doc.Title != "Expense Policy" {
		t.Errorf("Title = %q, want trimmed %q", doc.Title, "Expense Policy")
	}
	if doc.ID == "" {
		t.Error("ID not assigned")
	}
	if len(auditRepo.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(auditRepo.entries))
	}
	entry := auditRepo.entries[0]
	if entry.DocumentID != doc.ID {
		t.Errorf("audit DocumentID = %q, want %q", entry.DocumentID, doc.ID)
	}
	if entry.ActorID != "user-jane" {
		t.Errorf("audit ActorID = %q, want %q", entry.ActorID, "user-jane")
	}
	if entry.Action != models.AuditActionDocumentUpload {
		t.Errorf("audit Action = %q, want %q", entry.Action, models.AuditActionDocumentUpload)
	}
}

func TestDocumentService_CreateDocument_Validation(t *testing.T) {
	svc := NewDocumentService(newStubDocumentRepo(), &stubAuditRepo{}, passthroughTx{}, testLogger())
	bogus := models.DocumentCategory("NEWSLETTER")

	tests := []struct {
		name string
		req  services.CreateDocumentRequest
	}{
		{
			name: "missing title",
			req:  services.CreateDocumentRequest{UploadedBy: "jane@org.example"},
		},
		{
			name: "unknown category",
			req:  services.CreateDocumentRequest{Title: "Doc", Category: &bogus, UploadedBy: "jane@org.example"},
		},
		{
			name: "missing uploader identity",
			req:  services.CreateDocumentRequest{Title: "Doc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDocument(context.Background(), &tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestDocumentService_UpdateDocument(t *testing.T) {
	docRepo := newStubDocumentRepo()
	docRepo.docs["doc-1"] = models.Document{ID: "doc-1", Title: "Doc", DepartmentName: "Finance"}
	svc := NewDocumentService(docRepo, &stubAuditRepo{}, passthroughTx{}, testLogger())

	dept := "Engineering"
	cat := models.CategoryReport
	doc, err := svc.UpdateDocument(context.Background(), "doc-1", &services.UpdateDocumentRequest{
		Department: &dept,
		Category:   &cat,
	})
	if err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}
	if doc.DepartmentName != "Engineering" {
		t.Errorf("DepartmentName = %q, want %q", doc.DepartmentName, "Engineering")
	}
	if doc.Category == nil || *doc.Category != models.CategoryReport {
		t.Errorf("Category = %v, want %q", doc.Category, models.CategoryReport)
	}

	if _, err := svc.UpdateDocument(context.Background(), "", &services.UpdateDocumentRequest{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty id error = %v, want ErrValidation", err)
	}
}

func TestDocumentService_ListDocuments_FiltersByDepartment(t *testing.T) {
	docRepo := newStubDocumentRepo()
	docRepo.docs["doc-1"] = models.Document{ID: "doc-1", DepartmentName: "Finance"}
	docRepo.docs["doc-2"] = models.Document{ID: "doc-2", DepartmentName: "Engineering"}
	svc := NewDocumentService(docRepo, &stubAuditRepo{}, passthroughTx{}, testLogger())

	all, err := svc.ListDocuments(context.Background(), "")
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	finance, err := svc.ListDocuments(context.Background(), "finance")
	if err != nil {
		t.Fatalf("ListDocuments(finance) error = %v", err)
	}
	if len(finance) != 1 || finance[0].ID != "doc-1" {
		t.Errorf("finance = %v, want only doc-1", finance)
	}
}
