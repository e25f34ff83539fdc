package app

import (
	"context"
	"fmt"

	"github.com/example/prismagen/internal/ports/primary"
	"github.com/example/prismagen/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	historyRepo secondary.HistoryRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(historyRepo secondary.HistoryRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		historyRepo: historyRepo,
	}
}

// ListRuns retrieves runs matching the given filters with their files.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, filters primary.HistoryFilters) ([]*primary.Run, error) {
	records, err := s.historyRepo.ListRuns(ctx, secondary.HistoryFilters{
		Model: filters.Model,
		Limit: filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.Run, len(records))
	for i, r := range records {
		artifacts, err := s.historyRepo.ListArtifacts(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of run %s: %w", r.ID, err)
		}
		runs[i] = s.recordToRun(r, artifacts)
	}
	return runs, nil
}

// PruneRuns deletes runs older than the specified number of days.
func (s *HistoryServiceImpl) PruneRuns(ctx context.Context, olderThanDays int) (int, error) {
	return s.historyRepo.Prune(ctx, olderThanDays)
}

// Helper methods

func (s *HistoryServiceImpl) recordToRun(r *secondary.GenerationRunRecord, artifacts []*secondary.GeneratedArtifactRecord) *primary.Run {
	run := &primary.Run{
		ID:         r.ID,
		Model:      r.Model,
		SchemaPath: r.SchemaPath,
		Module:     r.Module,
		Artifacts:  r.Artifacts,
		Status:     r.Status,
		Error:      r.Error,
		CreatedAt:  r.CreatedAt,
	}
	for _, a := range artifacts {
		run.Files = append(run.Files, primary.RunFile{
			Target: a.Target,
			Path:   a.Path,
			Bytes:  a.Bytes,
		})
	}
	return run
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
