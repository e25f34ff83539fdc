package scaffold

import "path/filepath"

// Default layout of generated files inside a module.
const (
	DefaultEntityDir           = "domain/entity"
	DefaultMapperDir           = "infra/database/prisma/mappers"
	DefaultRepositoryDir       = "app/repositories"
	DefaultPrismaRepositoryDir = "infra/database/prisma"
	DefaultExtension           = ".ts"
)

// Layout holds the module-relative directories and file extension of every
// output target.
type Layout struct {
	EntityDir           string
	MapperDir           string
	RepositoryDir       string
	PrismaRepositoryDir string
	Extension           string
}

// DefaultLayout returns the conventional layered-architecture layout.
func DefaultLayout() Layout {
	return Layout{
		EntityDir:           DefaultEntityDir,
		MapperDir:           DefaultMapperDir,
		RepositoryDir:       DefaultRepositoryDir,
		PrismaRepositoryDir: DefaultPrismaRepositoryDir,
		Extension:           DefaultExtension,
	}
}

// withDefaults fills empty entries from DefaultLayout.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l.EntityDir == "" {
		l.EntityDir = d.EntityDir
	}
	if l.MapperDir == "" {
		l.MapperDir = d.MapperDir
	}
	if l.RepositoryDir == "" {
		l.RepositoryDir = d.RepositoryDir
	}
	if l.PrismaRepositoryDir == "" {
		l.PrismaRepositoryDir = d.PrismaRepositoryDir
	}
	if l.Extension == "" {
		l.Extension = d.Extension
	}
	return l
}

// PathResolver maps an output target and model to a destination path.
type PathResolver struct {
	layout Layout
}

// NewPathResolver creates a resolver for layout. Empty layout entries use
// the defaults.
func NewPathResolver(layout Layout) *PathResolver {
	return &PathResolver{layout: layout.withDefaults()}
}

// Resolve returns <outputRoot>/<moduleBase>/<target dir>/<file name>.
func (r *PathResolver) Resolve(outputRoot, moduleBase string, target Target, modelName string) string {
	dir, file := r.location(target, ToKebabCase(modelName))
	return filepath.Join(outputRoot, moduleBase, dir, file+r.layout.Extension)
}

// location returns the directory and extension-less file name of target.
func (r *PathResolver) location(target Target, kebab string) (dir, file string) {
	switch target {
	case TargetEntity:
		return r.layout.EntityDir, kebab + ".entity"
	case TargetMapper:
		return r.layout.MapperDir, kebab + ".mapper"
	case TargetRepository:
		return r.layout.RepositoryDir, kebab + ".repository"
	case TargetPrismaRepository:
		return r.layout.PrismaRepositoryDir, "prisma-" + kebab + ".repository"
	default:
		return "", kebab
	}
}
