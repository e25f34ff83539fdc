package db

// SchemaSQL is the complete schema of the history database.
//
// Tests load it through GetSchemaSQL; do not duplicate CREATE TABLE
// statements in test files.
const SchemaSQL = `
-- Generation runs (one per generate invocation)
CREATE TABLE IF NOT EXISTS generation_runs (
	id TEXT PRIMARY KEY,
	model TEXT NOT NULL,
	schema_path TEXT NOT NULL,
	module TEXT,
	artifacts TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('completed', 'failed')) DEFAULT 'completed',
	error TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generation_runs_model ON generation_runs(model);
CREATE INDEX IF NOT EXISTS idx_generation_runs_created_at ON generation_runs(created_at);

-- Generated artifacts (one per written file)
CREATE TABLE IF NOT EXISTS generated_artifacts (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	target TEXT NOT NULL CHECK(target IN ('entity', 'mapper', 'repository', 'prisma repository')),
	path TEXT NOT NULL,
	bytes INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES generation_runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_generated_artifacts_run ON generated_artifacts(run_id);
`

// GetSchemaSQL returns the schema for test setup.
func GetSchemaSQL() string {
	return SchemaSQL
}
