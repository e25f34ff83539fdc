package primary

import "context"

// HistoryService defines the primary port for generation history.
type HistoryService interface {
	// ListRuns retrieves recorded runs matching the given filters.
	ListRuns(ctx context.Context, filters HistoryFilters) ([]*Run, error)

	// PruneRuns deletes runs older than the specified number of days.
	PruneRuns(ctx context.Context, olderThanDays int) (int, error)
}

// Run represents a recorded generation run at the port boundary.
type Run struct {
	ID         string
	Model      string
	SchemaPath string
	Module     string
	Artifacts  string
	Status     string
	Error      string
	CreatedAt  string
	Files      []RunFile
}

// RunFile is one file written by a run.
type RunFile struct {
	Target string
	Path   string
	Bytes  int
}

// HistoryFilters contains filter options for querying runs.
type HistoryFilters struct {
	Model string
	Limit int
}
