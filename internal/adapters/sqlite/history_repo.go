// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/example/prismagen/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// RecordRun persists a run and its artifacts in one transaction.
func (r *HistoryRepository) RecordRun(ctx context.Context, run *secondary.GenerationRunRecord, artifacts []*secondary.GeneratedArtifactRecord) error {
	if run.ID == "" {
		run.ID = ulid.Make().String()
	}
	if run.Status == "" {
		run.Status = "completed"
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO generation_runs (id, model, schema_path, module, artifacts, status, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Model,
		run.SchemaPath,
		nullString(run.Module),
		run.Artifacts,
		run.Status,
		nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to create generation run: %w", err)
	}

	for i, a := range artifacts {
		if a.ID == "" {
			a.ID = ulid.Make().String()
		}
		a.RunID = run.ID
		a.Position = i

		_, err = tx.ExecContext(ctx,
			`INSERT INTO generated_artifacts (id, run_id, target, path, bytes, position) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID,
			a.RunID,
			a.Target,
			a.Path,
			a.Bytes,
			a.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to create generated artifact %s: %w", a.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit generation run: %w", err)
	}
	return nil
}

// ListRuns retrieves runs matching the given filters, newest first.
func (r *HistoryRepository) ListRuns(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.GenerationRunRecord, error) {
	query := `SELECT id, model, schema_path, module, artifacts, status, error, created_at FROM generation_runs WHERE 1=1`
	args := []any{}

	if filters.Model != "" {
		query += " AND model = ?"
		args = append(args, filters.Model)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.GenerationRunRecord
	for rows.Next() {
		var (
			module    sql.NullString
			errText   sql.NullString
			createdAt time.Time
		)

		record := &secondary.GenerationRunRecord{}
		err := rows.Scan(&record.ID,
			&record.Model,
			&record.SchemaPath,
			&module,
			&record.Artifacts,
			&record.Status,
			&errText,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		record.Module = module.String
		record.Error = errText.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		runs = append(runs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}

	return runs, nil
}

// ListArtifacts retrieves the artifacts written by a run, in write order.
func (r *HistoryRepository) ListArtifacts(ctx context.Context, runID string) ([]*secondary.GeneratedArtifactRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, target, path, bytes, position, created_at FROM generated_artifacts WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*secondary.GeneratedArtifactRecord
	for rows.Next() {
		var createdAt time.Time

		record := &secondary.GeneratedArtifactRecord{}
		err := rows.Scan(&record.ID,
			&record.RunID,
			&record.Target,
			&record.Path,
			&record.Bytes,
			&record.Position,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generated artifact: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)

		artifacts = append(artifacts, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generated artifacts: %w", err)
	}

	return artifacts, nil
}

// Prune deletes runs older than the given number of days together with
// their artifacts.
func (r *HistoryRepository) Prune(ctx context.Context, days int) (int, error) {
	cutoff := fmt.Sprintf("-%d days", days)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Artifacts go first; foreign key enforcement is per connection.
	_, err = tx.ExecContext(ctx,
		"DELETE FROM generated_artifacts WHERE run_id IN (SELECT id FROM generation_runs WHERE created_at < datetime('now', ?))",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generated artifacts: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM generation_runs WHERE created_at < datetime('now', ?)",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generation runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prune: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure HistoryRepository implements the interface
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
