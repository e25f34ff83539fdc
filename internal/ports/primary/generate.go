// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"
	"errors"

	"github.com/example/prismagen/internal/scaffold"
)

var (
	// ErrUnknownModel is returned when the requested model is not in the schema.
	ErrUnknownModel = errors.New("unknown model")
	// ErrUnknownModule is returned when the requested module alias is not configured.
	ErrUnknownModule = errors.New("unknown module")
)

// GenerateService defines the primary port for artifact generation.
type GenerateService interface {
	// Plan parses the schema and renders the requested artifacts without
	// writing anything.
	Plan(ctx context.Context, req GenerateRequest) (*GeneratePlan, error)

	// Apply writes every file of a plan in order and records the run.
	// A failed write stops the run; files already written stay.
	Apply(ctx context.Context, plan *GeneratePlan) (*GenerateResponse, error)

	// ListModels parses a schema file and returns its models.
	ListModels(ctx context.Context, schemaPath string) ([]ModelSummary, error)
}

// GenerateRequest contains the choices for one generation run.
type GenerateRequest struct {
	SchemaPath string
	Model      string
	Module     string // alias name, e.g. "src"
	ModuleBase string // alias base path, e.g. "src/"
	OutputRoot string
	Kinds      []scaffold.ArtifactKind
	NoHistory  bool
}

// GeneratePlan is a rendered but unwritten generation run.
type GeneratePlan struct {
	Request GenerateRequest
	Result  *scaffold.GeneratorResult
	// Existing lists the planned paths that already exist on disk.
	Existing []string
}

// GenerateResponse contains the result of applying a plan.
type GenerateResponse struct {
	RunID     string // empty when history is disabled
	Written   []scaffold.GeneratedFile
	NextSteps []string
}

// ModelSummary describes a parsed model.
type ModelSummary struct {
	Name           string
	Fields         int
	MappableFields int
}
