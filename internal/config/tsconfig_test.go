package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAliases(t *testing.T) {
	aliases, err := ParseAliases([]byte(`{
  "compilerOptions": {
    "paths": {
      "@app/*": ["src/app/*"],
      "@billing/*": ["libs/billing/src/*", "fallback/*"],
      "@empty/*": []
    }
  }
}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"app", "billing"}, aliases.Names())
	assert.False(t, aliases.Fallback)

	base, ok := aliases.Base("billing")
	require.True(t, ok)
	assert.Equal(t, "libs/billing/src/", base)

	_, ok = aliases.Base("empty")
	assert.False(t, ok)
}

func TestParseAliases_JSONC(t *testing.T) {
	aliases, err := ParseAliases([]byte(`{
  // generated by nest new
  "compilerOptions": {
    /* module aliases */
    "paths": {
      "@src/*": ["src/*"],
    },
  },
}`))
	require.NoError(t, err)

	base, ok := aliases.Base("src")
	require.True(t, ok)
	assert.Equal(t, "src/", base)
}

func TestLoadAliases_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file", content: nil},
		{name: "broken json", content: ptr(`{"compilerOptions": {`)},
		{name: "no compilerOptions", content: ptr(`{}`)},
		{name: "empty paths", content: ptr(`{"compilerOptions": {"paths": {}}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tsconfig.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			aliases, err := LoadAliases(path)
			require.NoError(t, err)
			assert.True(t, aliases.Fallback)
			assert.Equal(t, []string{"src"}, aliases.Names())
			base, _ := aliases.Base("src")
			assert.Equal(t, "src/", base)
		})
	}
}

func TestLoadAliases_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"compilerOptions":{"paths":{"@core/*":["src/core/*"]}}}`), 0644))

	aliases, err := LoadAliases(path)
	require.NoError(t, err)
	assert.False(t, aliases.Fallback)
	assert.Equal(t, 1, aliases.Len())
}

func TestLoadAliases_ReadError(t *testing.T) {
	// A directory cannot be read as a file
	_, err := LoadAliases(t.TempDir())
	assert.Error(t, err)
}

func ptr(s string) *string { return &s }
