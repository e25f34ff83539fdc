package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/prismagen/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.FileWriter        = (*mockFileWriter)(nil)
	_ secondary.HistoryRepository = (*mockHistoryRepository)(nil)
)

// mockFileWriter implements secondary.FileWriter for testing.
type mockFileWriter struct {
	files    map[string]string
	order    []string
	existing map[string]bool
	failOn   string
	writeErr error
}

func newMockFileWriter() *mockFileWriter {
	return &mockFileWriter{
		files:    make(map[string]string),
		existing: make(map[string]bool),
	}
}

func (m *mockFileWriter) WriteFile(ctx context.Context, path, content string) error {
	if m.failOn != "" && filepath.Base(path) == m.failOn {
		if m.writeErr != nil {
			return m.writeErr
		}
		return errors.New("permission denied")
	}
	m.files[path] = content
	m.order = append(m.order, path)
	return nil
}

func (m *mockFileWriter) FileExists(ctx context.Context, path string) (bool, error) {
	return m.existing[path], nil
}

// mockHistoryRepository implements secondary.HistoryRepository for testing.
type mockHistoryRepository struct {
	runs       []*secondary.GenerationRunRecord
	artifacts  map[string][]*secondary.GeneratedArtifactRecord
	recordErr  error
	listErr    error
	pruned     int
	pruneDays  int
	nextRunNum int
}

func newMockHistoryRepository() *mockHistoryRepository {
	return &mockHistoryRepository{
		artifacts: make(map[string][]*secondary.GeneratedArtifactRecord),
	}
}

func (m *mockHistoryRepository) RecordRun(ctx context.Context, run *secondary.GenerationRunRecord, artifacts []*secondary.GeneratedArtifactRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	if run.ID == "" {
		m.nextRunNum++
		run.ID = fmt.Sprintf("RUN-%d", m.nextRunNum)
	}
	for i, a := range artifacts {
		a.RunID = run.ID
		a.Position = i
	}
	m.runs = append(m.runs, run)
	m.artifacts[run.ID] = artifacts
	return nil
}

func (m *mockHistoryRepository) ListRuns(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.GenerationRunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.GenerationRunRecord
	for i := len(m.runs) - 1; i >= 0; i-- {
		r := m.runs[i]
		if filters.Model != "" && r.Model != filters.Model {
			continue
		}
		result = append(result, r)
	}

	// Apply limit
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockHistoryRepository) ListArtifacts(ctx context.Context, runID string) ([]*secondary.GeneratedArtifactRecord, error) {
	return m.artifacts[runID], nil
}

func (m *mockHistoryRepository) Prune(ctx context.Context, days int) (int, error) {
	m.pruneDays = days
	return m.pruned, nil
}

// writeSchema writes a schema file into a temp dir and returns its path.
func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.prisma")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}
	return path
}
