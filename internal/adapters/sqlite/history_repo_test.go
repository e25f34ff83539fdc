package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/prismagen/internal/adapters/sqlite"
	"github.com/example/prismagen/internal/ports/secondary"
)

func TestHistoryRepository_RecordRun(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()

	t.Run("assigns ids and keeps artifact order", func(t *testing.T) {
		run := &secondary.GenerationRunRecord{
			Model:      "User",
			SchemaPath: "prisma/schema.prisma",
			Module:     "src",
			Artifacts:  "entity, mapper",
		}
		artifacts := []*secondary.GeneratedArtifactRecord{
			{Target: "entity", Path: "/p/src/domain/entity/user.entity.ts", Bytes: 120},
			{Target: "mapper", Path: "/p/src/infra/database/prisma/mappers/user.mapper.ts", Bytes: 80},
		}

		require.NoError(t, repo.RecordRun(ctx, run, artifacts))

		_, err := ulid.Parse(run.ID)
		require.NoError(t, err, "run id should be a ULID")
		assert.Equal(t, "completed", run.Status)
		for i, a := range artifacts {
			assert.Equal(t, run.ID, a.RunID)
			assert.Equal(t, i, a.Position)
			assert.NotEmpty(t, a.ID)
		}

		got, err := repo.ListArtifacts(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "entity", got[0].Target)
		assert.Equal(t, "/p/src/domain/entity/user.entity.ts", got[0].Path)
		assert.Equal(t, 120, got[0].Bytes)
		assert.Equal(t, "mapper", got[1].Target)
		assert.Equal(t, 1, got[1].Position)
	})

	t.Run("records failed run with null module", func(t *testing.T) {
		run := &secondary.GenerationRunRecord{
			ID:         "RUN-FAILED",
			Model:      "Post",
			SchemaPath: "prisma/schema.prisma",
			Artifacts:  "entity",
			Status:     "failed",
			Error:      "failed to write: permission denied",
		}
		require.NoError(t, repo.RecordRun(ctx, run, nil))

		runs, err := repo.ListRuns(ctx, secondary.HistoryFilters{Model: "Post"})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "RUN-FAILED", runs[0].ID)
		assert.Equal(t, "failed", runs[0].Status)
		assert.Equal(t, "failed to write: permission denied", runs[0].Error)
		assert.Empty(t, runs[0].Module)
		assert.NotEmpty(t, runs[0].CreatedAt)
	})

	t.Run("rejects unknown target and rolls back", func(t *testing.T) {
		run := &secondary.GenerationRunRecord{
			ID:         "RUN-BAD",
			Model:      "Tag",
			SchemaPath: "prisma/schema.prisma",
			Artifacts:  "entity",
		}
		err := repo.RecordRun(ctx, run, []*secondary.GeneratedArtifactRecord{{Target: "service", Path: "/x"}})
		require.Error(t, err)

		runs, err := repo.ListRuns(ctx, secondary.HistoryFilters{Model: "Tag"})
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestHistoryRepository_ListRuns(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()

	seedRun(t, db, "RUN-A", "User", 3)
	seedRun(t, db, "RUN-B", "Post", 2)
	seedRun(t, db, "RUN-C", "User", 1)

	t.Run("newest first", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, secondary.HistoryFilters{})
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "RUN-C", runs[0].ID)
		assert.Equal(t, "RUN-B", runs[1].ID)
		assert.Equal(t, "RUN-A", runs[2].ID)
	})

	t.Run("filters by model", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, secondary.HistoryFilters{Model: "User"})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "RUN-C", runs[0].ID)
		assert.Equal(t, "RUN-A", runs[1].ID)
	})

	t.Run("respects limit", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, secondary.HistoryFilters{Limit: 1})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "RUN-C", runs[0].ID)
	})
}

func TestHistoryRepository_ListArtifacts_Empty(t *testing.T) {
	repo := sqlite.NewHistoryRepository(setupTestDB(t))

	artifacts, err := repo.ListArtifacts(context.Background(), "RUN-MISSING")
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestHistoryRepository_Prune(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewHistoryRepository(db)
	ctx := context.Background()

	seedRun(t, db, "RUN-OLD", "User", 40)
	seedArtifact(t, db, "ART-OLD", "RUN-OLD")
	seedRun(t, db, "RUN-NEW", "User", 1)
	seedArtifact(t, db, "ART-NEW", "RUN-NEW")

	count, err := repo.Prune(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	runs, err := repo.ListRuns(ctx, secondary.HistoryFilters{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "RUN-NEW", runs[0].ID)

	var artifacts int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM generated_artifacts").Scan(&artifacts))
	assert.Equal(t, 1, artifacts)

	count, err = repo.Prune(ctx, 30)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func newMockRepo(t *testing.T) (*sqlite.HistoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.NewHistoryRepository(db), mock
}

func TestHistoryRepository_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")
	run := func() *secondary.GenerationRunRecord {
		return &secondary.GenerationRunRecord{Model: "User", SchemaPath: "s.prisma", Artifacts: "entity"}
	}

	t.Run("begin fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin().WillReturnError(boom)

		err := repo.RecordRun(ctx, run(), nil)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("run insert fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO generation_runs").WillReturnError(boom)
		mock.ExpectRollback()

		err := repo.RecordRun(ctx, run(), nil)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "failed to create generation run")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("artifact insert fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO generation_runs").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO generated_artifacts").WillReturnError(boom)
		mock.ExpectRollback()

		err := repo.RecordRun(ctx, run(), []*secondary.GeneratedArtifactRecord{{Target: "entity", Path: "/p/user.entity.ts"}})
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "/p/user.entity.ts")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO generation_runs").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(boom)

		err := repo.RecordRun(ctx, run(), nil)
		assert.ErrorContains(t, err, "failed to commit generation run")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list query fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM generation_runs").WillReturnError(boom)

		_, err := repo.ListRuns(ctx, secondary.HistoryFilters{})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list scan fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM generated_artifacts").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ART-1"))

		_, err := repo.ListArtifacts(ctx, "RUN-1")
		assert.ErrorContains(t, err, "failed to scan generated artifact")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("prune fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM generated_artifacts").WillReturnError(boom)
		mock.ExpectRollback()

		_, err := repo.Prune(ctx, 30)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
