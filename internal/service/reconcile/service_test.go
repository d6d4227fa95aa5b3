package reconcile

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"sirtis/internal/domain"
	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
	"sirtis/internal/policy"
)

type fakeDocumentRepo struct {
	docs    []models.Document
	applied []models.DocumentUpdate
}

func (f *fakeDocumentRepo) ListAll(ctx context.Context) ([]models.Document, error) {
	out := make([]models.Document, len(f.docs))
	copy(out, f.docs)
	return out, nil
}

func (f *fakeDocumentRepo) ListByDepartment(ctx context.Context, department string) ([]models.Document, error) {
	return f.ListAll(ctx)
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			doc := f.docs[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeDocumentRepo) UpdateDeclared(ctx context.Context, id string, department *string, category *models.DocumentCategory) (*models.Document, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeDocumentRepo) ApplyReconciliation(ctx context.Context, update *models.DocumentUpdate) error {
	for i := range f.docs {
		if f.docs[i].ID != update.ID {
			continue
		}
		f.docs[i].DepartmentName = update.DepartmentName
		if update.DepartmentID != nil {
			f.docs[i].DepartmentID = update.DepartmentID
		}
		cat := update.Category
		f.docs[i].Category = &cat
		f.docs[i].FolderPath = update.FolderPath
		f.docs[i].CustomMetadata = update.CustomMetadata
		f.docs[i].IsPersonal = false
		f.applied = append(f.applied, *update)
		return nil
	}
	return domain.ErrNotFound
}

type fakeDepartmentRepo struct{ depts []models.Department }

func (f *fakeDepartmentRepo) ListAll(ctx context.Context) ([]models.Department, error) {
	return f.depts, nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (*models.Department, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, dept *models.Department) error {
	f.depts = append(f.depts, *dept)
	return nil
}

type fakeUserRepo struct{ users []models.User }

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]models.User, error) { return f.users, nil }

type fakeEmployeeRepo struct{ employees []models.Employee }

func (f *fakeEmployeeRepo) ListAll(ctx context.Context) ([]models.Employee, error) {
	return f.employees, nil
}

type fakeAuditRepo struct{ entries []models.AuditEntry }

func (f *fakeAuditRepo) ListCreationEntries(ctx context.Context) ([]models.AuditEntry, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) Record(ctx context.Context, entry *models.AuditEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeFolderRepo struct {
	upserts   []models.FolderAggregate
	keptPaths []string
}

func (f *fakeFolderRepo) ListActive(ctx context.Context) ([]models.FolderAggregate, error) {
	return f.upserts, nil
}

func (f *fakeFolderRepo) Upsert(ctx context.Context, agg *models.FolderAggregate) error {
	for i := range f.upserts {
		if f.upserts[i].Path == agg.Path {
			f.upserts[i] = *agg
			return nil
		}
	}
	f.upserts = append(f.upserts, *agg)
	return nil
}

func (f *fakeFolderRepo) DeactivateExcept(ctx context.Context, keep []string) error {
	f.keptPaths = keep
	return nil
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.calls++
	return fn(ctx)
}

type serviceFixture struct {
	service    *Service
	docRepo    *fakeDocumentRepo
	folderRepo *fakeFolderRepo
	tx         *fakeTxManager
}

func newServiceFixture(t *testing.T, docs []models.Document) *serviceFixture {
	t.Helper()

	pol, err := policy.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	snap := testSnapshot()
	docRepo := &fakeDocumentRepo{docs: docs}
	folderRepo := &fakeFolderRepo{}
	tx := &fakeTxManager{}
	loader := NewLoader(
		docRepo,
		&fakeDepartmentRepo{depts: snap.Departments},
		&fakeUserRepo{users: snap.Users},
		&fakeEmployeeRepo{employees: snap.Employees},
		&fakeAuditRepo{entries: snap.AuditEntries},
		logger,
	)

	return &serviceFixture{
		service:    NewService(loader, docRepo, folderRepo, tx, pol, logger),
		docRepo:    docRepo,
		folderRepo: folderRepo,
		tx:         tx,
	}
}

func fixtureDocuments() []models.Document {
	report := models.CategoryReport
	return []models.Document{
		{ID: "doc-1", Title: "Budget Guidelines", DepartmentName: "Unknown Department", UploadedBy: "jane@org.example"},
		{ID: "doc-2", Title: "Q1 Numbers", DepartmentName: "Finance", Category: &report, UploadedBy: "jane@org.example"},
		{ID: "doc-3", Title: "Timesheet Notes", DepartmentName: "unassigned", UploadedBy: "bob@org.example"},
	}
}

func TestService_Run_DryRunWritesNothing(t *testing.T) {
	fx := newServiceFixture(t, fixtureDocuments())

	result, err := fx.service.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.Success || !result.DryRun {
		t.Errorf("result = {Success: %v, DryRun: %v}, want both true", result.Success, result.DryRun)
	}
	if result.TotalDocuments != 3 {
		t.Errorf("TotalDocuments = %d, want 3", result.TotalDocuments)
	}
	if result.UpdatedDocuments != 3 {
		t.Errorf("UpdatedDocuments = %d, want 3", result.UpdatedDocuments)
	}
	if len(fx.docRepo.applied) != 0 {
		t.Errorf("documents written in dry run: %d", len(fx.docRepo.applied))
	}
	if len(fx.folderRepo.upserts) != 0 {
		t.Errorf("aggregates written in dry run: %d", len(fx.folderRepo.upserts))
	}
	if fx.tx.calls != 0 {
		t.Errorf("transactions opened in dry run: %d", fx.tx.calls)
	}
}

func TestService_Run_CommitUpdatesDocumentsAndAggregates(t *testing.T) {
	fx := newServiceFixture(t, fixtureDocuments())

	result, err := fx.service.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.UpdatedDocuments != 3 {
		t.Errorf("UpdatedDocuments = %d, want 3", result.UpdatedDocuments)
	}
	if len(fx.docRepo.applied) != 3 {
		t.Fatalf("applied %d document updates, want 3", len(fx.docRepo.applied))
	}
	if fx.tx.calls != 2 {
		t.Errorf("transactions = %d, want 2 (document phase + aggregate phase)", fx.tx.calls)
	}

	wantPaths := []string{
		"Finance/General Document",
		"Finance/Payroll/General Document",
		"Finance/Reports",
	}
	gotPaths := make([]string, 0, len(fx.folderRepo.upserts))
	for _, agg := range fx.folderRepo.upserts {
		gotPaths = append(gotPaths, agg.Path)
	}
	sort.Strings(gotPaths)
	if len(gotPaths) != len(wantPaths) {
		t.Fatalf("aggregate paths = %v, want %v", gotPaths, wantPaths)
	}
	for i := range wantPaths {
		if gotPaths[i] != wantPaths[i] {
			t.Errorf("aggregate path[%d] = %q, want %q", i, gotPaths[i], wantPaths[i])
		}
	}
	if len(fx.folderRepo.keptPaths) != 3 {
		t.Errorf("DeactivateExcept kept %d paths, want 3", len(fx.folderRepo.keptPaths))
	}

	for _, agg := range fx.folderRepo.upserts {
		if agg.Path != "Finance/Payroll/General Document" {
			continue
		}
		if agg.CategoryLabel != "Payroll / General Document" {
			t.Errorf("CategoryLabel = %q, want %q", agg.CategoryLabel, "Payroll / General Document")
		}
		if agg.DocumentCount != 1 {
			t.Errorf("DocumentCount = %d, want 1", agg.DocumentCount)
		}
		if !agg.Active {
			t.Error("Active = false, want true")
		}
	}
}

func TestService_Run_SecondPassIsIdempotent(t *testing.T) {
	fx := newServiceFixture(t, fixtureDocuments())

	if _, err := fx.service.Run(context.Background(), false); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstApplied := len(fx.docRepo.applied)

	result, err := fx.service.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if result.UpdatedDocuments != 0 {
		t.Errorf("second pass UpdatedDocuments = %d, want 0", result.UpdatedDocuments)
	}
	if len(fx.docRepo.applied) != firstApplied {
		t.Errorf("second pass wrote %d more documents", len(fx.docRepo.applied)-firstApplied)
	}
	// The aggregate index is still rebuilt so it mirrors current state.
	if len(fx.folderRepo.keptPaths) != 3 {
		t.Errorf("second pass kept %d paths, want 3", len(fx.folderRepo.keptPaths))
	}
}

func TestService_Run_ClearsPersonalFlag(t *testing.T) {
	report := models.CategoryReport
	docs := []models.Document{
		{ID: "doc-p", Title: "Draft", DepartmentName: "Finance", Category: &report, IsPersonal: true, FolderPath: "Finance/Reports",
			CustomMetadata: models.Metadata{"department": "Finance", "subunit": nil, "categoryDisplay": "Reports"}},
	}
	fx := newServiceFixture(t, docs)

	result, err := fx.service.Run(context.Background(), false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.UpdatedDocuments != 1 {
		t.Fatalf("UpdatedDocuments = %d, want 1", result.UpdatedDocuments)
	}
	if fx.docRepo.docs[0].IsPersonal {
		t.Error("IsPersonal still set after commit run")
	}
}

func TestService_Run_ExamplesAreCapped(t *testing.T) {
	docs := make([]models.Document, 8)
	for i := range docs {
		docs[i] = models.Document{ID: string(rune('a' + i)), DepartmentName: "Engineering"}
	}
	fx := newServiceFixture(t, docs)

	result, err := fx.service.Run(context.Background(), true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Examples) != maxExamples {
		t.Errorf("len(Examples) = %d, want %d", len(result.Examples), maxExamples)
	}
}
