package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
	"sirtis/internal/policy"
)

// maxExamples is the number of resolved-document records echoed back in
// the operation result, regardless of whether they changed.
const maxExamples = 5

// Result is the reconciliation operation's response payload.
type Result struct {
	Success          bool         `json:"success"`
	DryRun           bool         `json:"dryRun"`
	TotalDocuments   int          `json:"totalDocuments"`
	UpdatedDocuments int          `json:"updatedDocuments"`
	Examples         []Resolution `json:"examples"`
}

// Service runs the department/category reconciliation pass over the
// document repository and rebuilds the folder aggregate index.
//
// The operation is an administrator-triggered, serialized maintenance
// pass: it is not safe to run two passes concurrently against the same
// database, and nothing here guards against that.
type Service struct {
	loader     *Loader
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderAggregateRepository
	txManager  repositories.TransactionManager
	policy     *policy.Registry
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new reconciliation service
func NewService(
	loader *Loader,
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderAggregateRepository,
	txManager repositories.TransactionManager,
	pol *policy.Registry,
	logger *slog.Logger,
) *Service {
	return &Service{
		loader:     loader,
		docRepo:    docRepo,
		folderRepo: folderRepo,
		txManager:  txManager,
		policy:     pol,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one reconciliation pass. In dry-run mode everything is
// computed but nothing is persisted; in commit mode the per-document
// updates happen in one transaction and the aggregate rebuild in a
// second one. A crash between the two leaves aggregates stale until the
// next run, which rebuilds them in full.
func (s *Service) Run(ctx context.Context, dryRun bool) (*Result, error) {
	started := s.now()

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := buildIndexes(snap)
	resolver := NewResolver(idx, s.policy)

	resolutions := make([]Resolution, 0, len(snap.Documents))
	updated := 0
	for i := range snap.Documents {
		doc := &snap.Documents[i]
		res := resolver.Resolve(doc)
		finalize(doc, &res, started)
		if res.Changed {
			updated++
		}
		resolutions = append(resolutions, res)
	}

	result := &Result{
		Success:          true,
		DryRun:           dryRun,
		TotalDocuments:   len(snap.Documents),
		UpdatedDocuments: updated,
		Examples:         resolutions[:min(maxExamples, len(resolutions))],
	}

	if dryRun {
		s.logger.Info("reconciliation dry run complete",
			"total", result.TotalDocuments,
			"would_update", result.UpdatedDocuments,
		)
		return result, nil
	}

	if updated > 0 {
		if err := s.writeDocuments(ctx, resolutions); err != nil {
			return nil, err
		}
	}

	if err := s.rebuildAggregates(ctx, resolutions); err != nil {
		return nil, err
	}

	s.logger.Info("reconciliation complete",
		"total", result.TotalDocuments,
		"updated", result.UpdatedDocuments,
		"elapsed", s.now().Sub(started).String(),
	)
	return result, nil
}

// writeDocuments applies every changed document's resolved fields in a
// single transaction: all updates land or none do.
func (s *Service) writeDocuments(ctx context.Context, resolutions []Resolution) error {
	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range resolutions {
			res := &resolutions[i]
			if !res.Changed {
				continue
			}
			update := &models.DocumentUpdate{
				ID:             res.DocumentID,
				DepartmentName: res.DepartmentName,
				DepartmentID:   res.DepartmentID,
				Category:       res.Category,
				FolderPath:     res.FolderPath,
				CustomMetadata: res.mergedMetadata,
			}
			if err := s.docRepo.ApplyReconciliation(txCtx, update); err != nil {
				return err
			}
		}
		return nil
	})
}

// folderGroup accumulates the documents sharing one canonical path.
type folderGroup struct {
	res   *Resolution
	count int
}

// rebuildAggregates groups all documents (changed or not) by final
// folder path and upserts one aggregate row per distinct path, then
// deactivates rows whose path no longer occurs. Runs even when no
// document changed so the index always mirrors current document state.
func (s *Service) rebuildAggregates(ctx context.Context, resolutions []Resolution) error {
	groups := make(map[string]*folderGroup)
	for i := range resolutions {
		res := &resolutions[i]
		if g, ok := groups[res.FolderPath]; ok {
			g.count++
		} else {
			groups[res.FolderPath] = &folderGroup{res: res, count: 1}
		}
	}

	paths := make([]string, 0, len(groups))
	for path := range groups {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, path := range paths {
			group := groups[path]
			res := group.res

			label := res.CategoryDisplay
			var subunit any
			if res.SubUnitName != nil {
				label = fmt.Sprintf("%s / %s", *res.SubUnitName, res.CategoryDisplay)
				subunit = *res.SubUnitName
			}

			agg := &models.FolderAggregate{
				Path:           path,
				DepartmentName: res.DepartmentName,
				CategoryLabel:  label,
				DocumentCount:  group.count,
				Metadata: models.Metadata{
					"subunit":         subunit,
					"categoryDisplay": res.CategoryDisplay,
				},
				Active: true,
			}
			if err := s.folderRepo.Upsert(txCtx, agg); err != nil {
				return err
			}
		}
		return s.folderRepo.DeactivateExcept(txCtx, paths)
	})
}
