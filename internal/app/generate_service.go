package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/prismagen/internal/ports/primary"
	"github.com/example/prismagen/internal/ports/secondary"
	"github.com/example/prismagen/internal/scaffold"
	"github.com/example/prismagen/internal/schema"
)

// Run statuses recorded in history.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// GenerateServiceImpl implements the GenerateService interface.
type GenerateServiceImpl struct {
	generator *scaffold.Generator
	writer    secondary.FileWriter
	history   secondary.HistoryRepository // nil when history is disabled
}

// NewGenerateService creates a new GenerateService with injected dependencies.
// history may be nil.
func NewGenerateService(generator *scaffold.Generator, writer secondary.FileWriter, history secondary.HistoryRepository) *GenerateServiceImpl {
	return &GenerateServiceImpl{
		generator: generator,
		writer:    writer,
		history:   history,
	}
}

// Plan parses the schema and renders the requested artifacts.
func (s *GenerateServiceImpl) Plan(ctx context.Context, req primary.GenerateRequest) (*primary.GeneratePlan, error) {
	models, err := schema.ParseFile(req.SchemaPath)
	if err != nil {
		return nil, err
	}

	model, ok := models.Lookup(req.Model)
	if !ok {
		return nil, fmt.Errorf("%w %q in %s", primary.ErrUnknownModel, req.Model, req.SchemaPath)
	}

	result, err := s.generator.Generate(scaffold.Selection{
		Model:      model,
		Kinds:      req.Kinds,
		ModuleBase: req.ModuleBase,
		OutputRoot: req.OutputRoot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", model.Name, err)
	}

	plan := &primary.GeneratePlan{Request: req, Result: result}
	for _, f := range result.Files {
		exists, err := s.writer.FileExists(ctx, f.Path)
		if err != nil {
			return nil, err
		}
		if exists {
			plan.Existing = append(plan.Existing, f.Path)
		}
	}

	slog.Debug("planned generation", "model", model.Name, "files", len(result.Files), "existing", len(plan.Existing))
	return plan, nil
}

// Apply writes the files of a plan in order and records the run.
func (s *GenerateServiceImpl) Apply(ctx context.Context, plan *primary.GeneratePlan) (*primary.GenerateResponse, error) {
	resp := &primary.GenerateResponse{NextSteps: plan.Result.NextSteps}

	var writeErr error
	for _, f := range plan.Result.Files {
		if err := s.writer.WriteFile(ctx, f.Path, f.Content); err != nil {
			writeErr = fmt.Errorf("failed to write %s: %w", f.Path, err)
			break
		}
		resp.Written = append(resp.Written, f)
		slog.Debug("wrote artifact", "target", f.Target.String(), "path", f.Path, "bytes", len(f.Content))
	}

	if runID, err := s.record(ctx, plan, resp.Written, writeErr); err != nil {
		// The files are on disk; a history failure does not undo them.
		slog.Warn("failed to record generation history", "error", err)
	} else {
		resp.RunID = runID
	}

	if writeErr != nil {
		return resp, writeErr
	}
	return resp, nil
}

// record stores the run in history. It is a no-op when history is disabled.
func (s *GenerateServiceImpl) record(ctx context.Context, plan *primary.GeneratePlan, written []scaffold.GeneratedFile, writeErr error) (string, error) {
	if s.history == nil || plan.Request.NoHistory {
		return "", nil
	}

	run := &secondary.GenerationRunRecord{
		Model:      plan.Result.Model,
		SchemaPath: plan.Request.SchemaPath,
		Module:     plan.Request.Module,
		Artifacts:  scaffold.DescribeKinds(plan.Request.Kinds),
		Status:     RunCompleted,
	}
	if writeErr != nil {
		run.Status = RunFailed
		run.Error = writeErr.Error()
	}

	artifacts := make([]*secondary.GeneratedArtifactRecord, len(written))
	for i, f := range written {
		artifacts[i] = &secondary.GeneratedArtifactRecord{
			Target: f.Target.String(),
			Path:   f.Path,
			Bytes:  len(f.Content),
		}
	}

	if err := s.history.RecordRun(ctx, run, artifacts); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListModels parses a schema file and summarises its models.
func (s *GenerateServiceImpl) ListModels(ctx context.Context, schemaPath string) ([]primary.ModelSummary, error) {
	models, err := schema.ParseFile(schemaPath)
	if err != nil {
		return nil, err
	}

	var types scaffold.TypeMapper
	summaries := make([]primary.ModelSummary, len(models))
	for i, m := range models {
		summaries[i] = primary.ModelSummary{
			Name:           m.Name,
			Fields:         len(m.Fields),
			MappableFields: len(types.Members(m.Fields, scaffold.Mutable)),
		}
	}
	return summaries, nil
}

// Ensure GenerateServiceImpl implements the interface
var _ primary.GenerateService = (*GenerateServiceImpl)(nil)
