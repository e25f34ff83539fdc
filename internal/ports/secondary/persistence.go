package secondary

import "context"

// HistoryRepository defines the secondary port for generation history persistence.
// Runs are immutable once recorded; old runs can be pruned.
type HistoryRepository interface {
	// RecordRun persists a run and its artifacts in one transaction.
	// Empty IDs are assigned by the repository.
	RecordRun(ctx context.Context, run *GenerationRunRecord, artifacts []*GeneratedArtifactRecord) error

	// ListRuns retrieves runs matching the given filters, newest first.
	ListRuns(ctx context.Context, filters HistoryFilters) ([]*GenerationRunRecord, error)

	// ListArtifacts retrieves the artifacts written by a run, in write order.
	ListArtifacts(ctx context.Context, runID string) ([]*GeneratedArtifactRecord, error)

	// Prune deletes runs older than the given number of days.
	// Returns the number of deleted runs.
	Prune(ctx context.Context, days int) (int, error)
}

// GenerationRunRecord represents one generate invocation as stored in persistence.
type GenerationRunRecord struct {
	ID         string
	Model      string
	SchemaPath string
	Module     string // Empty string means null
	Artifacts  string // e.g. "entity, repository(find, delete)"
	Status     string // 'completed', 'failed'
	Error      string // Empty string means null
	CreatedAt  string
}

// GeneratedArtifactRecord represents one written file as stored in persistence.
type GeneratedArtifactRecord struct {
	ID        string
	RunID     string
	Target    string // 'entity', 'mapper', 'repository', 'prisma repository'
	Path      string
	Bytes     int
	Position  int
	CreatedAt string
}

// HistoryFilters contains filter options for querying runs.
type HistoryFilters struct {
	Model string
	Limit int
}
