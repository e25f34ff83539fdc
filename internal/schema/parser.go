package schema

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingModelName is returned when a `model` line has no name token.
var ErrMissingModelName = errors.New("model declaration without a name")

const (
	modelKeyword = "model"
	blockClose   = "}"
	optionalMark = "?"

	initialLineBuffer = 64 * 1024
)

// Parse reads a schema and returns its models in declaration order.
//
// Lines are trimmed before inspection. A line whose first token is `model`
// opens a block; lines up to one that is exactly `}` are field lines. Field
// lines with fewer than two tokens are skipped, and everything past the type
// token (attributes) is ignored. Lines outside model blocks are ignored.
func Parse(r io.Reader) (Models, error) {
	var (
		models  Models
		current *Model
		lineNo  int
	)

	// Schema lines have no length limit.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), math.MaxInt)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if current != nil {
			if line == blockClose {
				models = append(models, *current)
				current = nil
				continue
			}
			if field, ok := parseField(line); ok {
				current.Fields = append(current.Fields, field)
			}
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 || tokens[0] != modelKeyword {
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingModelName)
		}
		current = &Model{Name: tokens[1]}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	// Unterminated block at EOF keeps the fields read so far.
	if current != nil {
		models = append(models, *current)
	}

	return models, nil
}

// parseField parses a single field line.
// Format: "name Type" or "name Type?" followed by optional attributes.
func parseField(line string) (Field, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Field{}, false
	}

	typeTag := tokens[1]
	optional := strings.HasSuffix(typeTag, optionalMark)
	if optional {
		typeTag = strings.TrimSuffix(typeTag, optionalMark)
	}

	return Field{
		Name:     tokens[0],
		Type:     FieldType(typeTag),
		Optional: optional,
	}, true
}

// ParseFile opens and parses the schema at path.
func ParseFile(path string) (Models, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close()

	models, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return models, nil
}

// FindSchemas lists the regular files in dir, sorted by name.
func FindSchemas(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}
