package service

import (
	"context"
	"log/slog"

	"sirtis/internal/domain/models"
	"sirtis/internal/domain/repositories"
	"sirtis/internal/domain/services"
)

// folderService exposes the derived folder aggregate index. Read-only:
// the index is written exclusively by commit-mode reconciliation runs.
type folderService struct {
	folderRepo repositories.FolderAggregateRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folderRepo repositories.FolderAggregateRepository, logger *slog.Logger) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// ListFolders returns the active folder aggregates ordered by path
func (s *folderService) ListFolders(ctx context.Context) ([]models.FolderAggregate, error) {
	return s.folderRepo.ListActive(ctx)
}
