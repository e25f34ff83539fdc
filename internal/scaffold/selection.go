package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownArtifact is returned for an unrecognised artifact keyword.
	ErrUnknownArtifact = errors.New("unknown artifact")
	// ErrUnknownOperation is returned for an unrecognised repository operation.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ParseOperations parses the --ops flag into operations.
// Format: "find,findMany,create,update,delete". Matching is case-insensitive.
// The result is in canonical order without duplicates.
func ParseOperations(opsStr string) ([]Operation, error) {
	if strings.TrimSpace(opsStr) == "" {
		return nil, nil
	}

	var ops []Operation
	for _, part := range strings.Split(opsStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		op, err := parseOperation(part)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return SortOperations(ops), nil
}

func parseOperation(s string) (Operation, error) {
	for _, op := range CanonicalOperations {
		if strings.EqualFold(s, string(op)) {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: find, findMany, create, update, delete)", ErrUnknownOperation, s)
}

// ParseArtifacts parses the --artifacts flag into artifact kinds.
// Format: "entity,mapper,repository". Repository kinds are returned without
// operations; see BuildKinds.
func ParseArtifacts(artifactsStr string) ([]ArtifactKind, error) {
	if strings.TrimSpace(artifactsStr) == "" {
		return nil, nil
	}

	var kinds []ArtifactKind
	seen := make(map[string]bool)
	for _, part := range strings.Split(artifactsStr, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true

		switch part {
		case EntityKind{}.Name():
			kinds = append(kinds, EntityKind{})
		case MapperKind{}.Name():
			kinds = append(kinds, MapperKind{})
		case RepositoryKind{}.Name():
			kinds = append(kinds, RepositoryKind{})
		default:
			return nil, fmt.Errorf("%w %q (valid: entity, mapper, repository)", ErrUnknownArtifact, part)
		}
	}

	return kinds, nil
}

// AllKinds returns every artifact kind with every repository operation.
func AllKinds() []ArtifactKind {
	return []ArtifactKind{
		EntityKind{},
		MapperKind{},
		RepositoryKind{}.WithOperations(CanonicalOperations),
	}
}

// BuildKinds builds artifact kinds from the --artifacts and --ops flags.
// No artifacts selects all of them; a repository without ops gets every
// operation. The repository kind is rebuilt with its operations rather than
// patched in place.
func BuildKinds(artifactsStr, opsStr string) ([]ArtifactKind, error) {
	kinds, err := ParseArtifacts(artifactsStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifacts: %w", err)
	}
	ops, err := ParseOperations(opsStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operations: %w", err)
	}

	if len(kinds) == 0 {
		kinds = []ArtifactKind{EntityKind{}, MapperKind{}, RepositoryKind{}}
	}
	if len(ops) == 0 {
		ops = CanonicalOperations
	}

	out := make([]ArtifactKind, 0, len(kinds))
	for _, k := range kinds {
		if repo, ok := k.(RepositoryKind); ok {
			k = repo.WithOperations(ops)
		}
		out = append(out, k)
	}
	return out, nil
}

// DescribeKinds formats kinds for display, e.g. "entity, repository(find, delete)".
func DescribeKinds(kinds []ArtifactKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Name()
		if repo, ok := k.(RepositoryKind); ok {
			ops := make([]string, len(repo.Operations))
			for j, op := range repo.Operations {
				ops[j] = op.String()
			}
			parts[i] += "(" + strings.Join(ops, ", ") + ")"
		}
	}
	return strings.Join(parts, ", ")
}
