package scaffold

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/example/prismagen/internal/schema"
	scaffoldtmpl "github.com/example/prismagen/internal/templates/scaffold"
)

// DefaultSoftDeleteField is the column set by generated delete methods.
const DefaultSoftDeleteField = "deletedAt"

// untyped is the input and return type of repository methods when no
// entity is generated.
const untyped = "any"

// Options configures a Generator.
type Options struct {
	Layout          Layout
	SoftDeleteField string // defaults to DefaultSoftDeleteField
	// LegacyUpdate makes update() without a mapper emit the findMany body
	// older versions of the tool produced.
	LegacyUpdate bool
}

// Generator generates code from templates.
type Generator struct {
	tmpl            *template.Template
	types           TypeMapper
	paths           *PathResolver
	softDeleteField string
	legacyUpdate    bool
}

// NewGenerator creates a new Generator.
func NewGenerator(opts Options) *Generator {
	tmpl := template.Must(scaffoldtmpl.Parse())

	softDelete := opts.SoftDeleteField
	if softDelete == "" {
		softDelete = DefaultSoftDeleteField
	}

	return &Generator{
		tmpl:            tmpl,
		paths:           NewPathResolver(opts.Layout),
		softDeleteField: softDelete,
		legacyUpdate:    opts.LegacyUpdate,
	}
}

type entityView struct {
	Name             string
	InterfaceMembers []string
	ClassMembers     []string
}

type mapperField struct {
	Name   string
	Coerce bool
}

type mapperView struct {
	Name   string
	Fields []mapperField
}

type repositoryView struct {
	Name            string
	InputType       string
	ReturnType      string
	SoftDeleteField string
	Operations      []Operation
	HasMapper       bool
	LegacyUpdate    bool
}

// RepositoryOptions controls repository generation.
type RepositoryOptions struct {
	Operations []Operation
	HasMapper  bool // map results through <Name>Mapper.toDomain
	HasEntity  bool // type inputs and results with the entity
}

// Entity renders the I<Name> interface and <Name> class.
func (g *Generator) Entity(m schema.Model) (string, error) {
	return g.render(scaffoldtmpl.EntityTemplate, entityView{
		Name:             m.Name,
		InterfaceMembers: g.types.Members(m.Fields, Mutable),
		ClassMembers:     g.types.Members(m.Fields, Immutable),
	})
}

// Mapper renders <Name>Mapper with its static toDomain function.
func (g *Generator) Mapper(m schema.Model) (string, error) {
	view := mapperView{Name: m.Name}
	for _, f := range m.Fields {
		if !g.types.Mappable(f) {
			continue
		}
		view.Fields = append(view.Fields, mapperField{
			Name:   f.Name,
			Coerce: g.types.NeedsNumericCoercion(f),
		})
	}
	return g.render(scaffoldtmpl.MapperTemplate, view)
}

// Repository renders the abstract <Name>Repository contract and the
// Prisma<Name>Repository adapter. Operations are emitted in canonical order.
func (g *Generator) Repository(m schema.Model, opts RepositoryOptions) (contract, adapter string, err error) {
	view := repositoryView{
		Name:            m.Name,
		InputType:       untyped,
		ReturnType:      untyped,
		SoftDeleteField: g.softDeleteField,
		Operations:      SortOperations(opts.Operations),
		HasMapper:       opts.HasMapper,
		LegacyUpdate:    g.legacyUpdate,
	}
	if opts.HasEntity {
		view.InputType = fmt.Sprintf("Partial<%s>", m.Name)
		view.ReturnType = m.Name
	}

	contract, err = g.render(scaffoldtmpl.RepositoryTemplate, view)
	if err != nil {
		return "", "", err
	}
	adapter, err = g.render(scaffoldtmpl.PrismaRepositoryTemplate, view)
	if err != nil {
		return "", "", err
	}
	return contract, adapter, nil
}

// Generate renders every artifact of sel. Files are ordered entity, mapper,
// repository contract, Prisma repository, whatever the selection order.
func (g *Generator) Generate(sel Selection) (*GeneratorResult, error) {
	result := &GeneratorResult{Model: sel.Model.Name}
	hasEntity, hasMapper := sel.Entity(), sel.Mapper()

	add := func(target Target, content string) {
		result.Files = append(result.Files, GeneratedFile{
			Target:  target,
			Path:    g.paths.Resolve(sel.OutputRoot, sel.ModuleBase, target, sel.Model.Name),
			Content: content,
		})
	}

	if hasEntity {
		content, err := g.Entity(sel.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to render entity: %w", err)
		}
		add(TargetEntity, content)
	}

	if hasMapper {
		content, err := g.Mapper(sel.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to render mapper: %w", err)
		}
		add(TargetMapper, content)
	}

	if repo, ok := sel.Repository(); ok {
		contract, adapter, err := g.Repository(sel.Model, RepositoryOptions{
			Operations: repo.Operations,
			HasMapper:  hasMapper,
			HasEntity:  hasEntity,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to render repository: %w", err)
		}
		add(TargetRepository, contract)
		add(TargetPrismaRepository, adapter)

		result.NextSteps = append(result.NextSteps, fmt.Sprintf(
			"Register { provide: %sRepository, useClass: Prisma%sRepository } in your module providers",
			sel.Model.Name, sel.Model.Name))
	}

	if hasMapper && !hasEntity {
		result.NextSteps = append(result.NextSteps, fmt.Sprintf(
			"%sMapper references the %s entity; generate it with --artifacts entity", sel.Model.Name, sel.Model.Name))
	}

	return result, nil
}

// render executes a named template.
func (g *Generator) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}

	slog.Debug("rendered template", "template", name, "bytes", buf.Len())
	return buf.String(), nil
}
