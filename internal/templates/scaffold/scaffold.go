// Package scaffold provides templates for code generation.
package scaffold

import (
	"embed"
	"text/template"
	"unicode"
)

//go:embed typescript/*.tmpl
var scaffoldTemplates embed.FS

// Template names defined by the embedded files.
const (
	EntityTemplate           = "entity"
	MapperTemplate           = "mapper"
	RepositoryTemplate       = "repository"
	PrismaRepositoryTemplate = "prisma_repository"
)

// Parse parses every embedded TypeScript template with TemplateFuncs.
func Parse() (*template.Template, error) {
	return template.New("scaffold").Funcs(TemplateFuncs()).ParseFS(scaffoldTemplates, "typescript/*.tmpl")
}

// TemplateFuncs returns the template function map for scaffold templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"lowerFirst": lowerFirst,
	}
}

// lowerFirst returns the string with the first letter lowercased.
// e.g., "UserProfile" -> "userProfile"
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
