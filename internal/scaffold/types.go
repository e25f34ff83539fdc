// Package scaffold provides code generation of layered TypeScript artifacts
// (entity, mapper, repository contract and Prisma adapter) from schema models.
package scaffold

import (
	"sort"

	"github.com/example/prismagen/internal/schema"
)

// Operation is a repository method that can be generated.
type Operation string

// Repository operations. Values are the generated method names.
const (
	OpFind     Operation = "find"
	OpFindMany Operation = "findMany"
	OpCreate   Operation = "create"
	OpDelete   Operation = "delete"
	OpUpdate   Operation = "update"
)

// CanonicalOperations is the emission order of repository methods.
var CanonicalOperations = []Operation{OpFind, OpFindMany, OpCreate, OpDelete, OpUpdate}

func (o Operation) String() string { return string(o) }

// rank returns the canonical position of o, or -1 if o is unknown.
func (o Operation) rank() int {
	for i, c := range CanonicalOperations {
		if c == o {
			return i
		}
	}
	return -1
}

// SortOperations returns a new slice with ops in canonical order, without
// duplicates or unknown values.
func SortOperations(ops []Operation) []Operation {
	seen := make(map[Operation]bool, len(ops))
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op.rank() < 0 || seen[op] {
			continue
		}
		seen[op] = true
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rank() < out[j].rank() })
	return out
}

// ArtifactKind is the closed set of things a generation run can produce:
// EntityKind, MapperKind and RepositoryKind.
type ArtifactKind interface {
	// Name is the selection keyword for the kind.
	Name() string
	artifactKind()
}

// EntityKind selects the domain entity.
type EntityKind struct{}

// MapperKind selects the persistence-to-domain mapper.
type MapperKind struct{}

// RepositoryKind selects the repository contract and its Prisma adapter.
type RepositoryKind struct {
	Operations []Operation // canonical order
}

func (EntityKind) Name() string     { return "entity" }
func (MapperKind) Name() string     { return "mapper" }
func (RepositoryKind) Name() string { return "repository" }

func (EntityKind) artifactKind()     {}
func (MapperKind) artifactKind()     {}
func (RepositoryKind) artifactKind() {}

// WithOperations returns a new RepositoryKind carrying ops in canonical order.
func (RepositoryKind) WithOperations(ops []Operation) RepositoryKind {
	return RepositoryKind{Operations: SortOperations(ops)}
}

// Target identifies one output file of a generation run.
type Target int

// Output targets, in write order.
const (
	TargetEntity Target = iota
	TargetMapper
	TargetRepository
	TargetPrismaRepository
)

func (t Target) String() string {
	switch t {
	case TargetEntity:
		return "entity"
	case TargetMapper:
		return "mapper"
	case TargetRepository:
		return "repository"
	case TargetPrismaRepository:
		return "prisma repository"
	default:
		return "unknown"
	}
}

// Selection is the resolved set of choices for one generation run.
type Selection struct {
	Model      schema.Model
	Kinds      []ArtifactKind
	ModuleBase string // alias base path, e.g. "src/"
	OutputRoot string
}

// Entity reports whether the entity was selected.
func (s Selection) Entity() bool {
	for _, k := range s.Kinds {
		if _, ok := k.(EntityKind); ok {
			return true
		}
	}
	return false
}

// Mapper reports whether the mapper was selected.
func (s Selection) Mapper() bool {
	for _, k := range s.Kinds {
		if _, ok := k.(MapperKind); ok {
			return true
		}
	}
	return false
}

// Repository returns the selected repository kind, if any.
func (s Selection) Repository() (RepositoryKind, bool) {
	for _, k := range s.Kinds {
		if r, ok := k.(RepositoryKind); ok {
			return r, true
		}
	}
	return RepositoryKind{}, false
}

// GeneratedFile represents a file to be created.
type GeneratedFile struct {
	Target  Target
	Path    string // joined with the selection's output root
	Content string
}

// GeneratorResult contains the result of a generation run.
type GeneratorResult struct {
	Model     string
	Files     []GeneratedFile
	NextSteps []string
}
