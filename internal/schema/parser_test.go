package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_UserModel(t *testing.T) {
	input := `model User {
  id String
  age Int?
  email String
}`

	models, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, models, 1)

	assert.Equal(t, Model{
		Name: "User",
		Fields: []Field{
			{Name: "id", Type: TypeString},
			{Name: "age", Type: TypeInt, Optional: true},
			{Name: "email", Type: TypeString},
		},
	}, models[0])
}

func TestParse_FullSchema(t *testing.T) {
	input := `datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

generator client {
  provider = "prisma-client-js"
}

enum Role {
  USER
  ADMIN
}

model User {
  id        String    @id @default(uuid())
  name      String?
  role      Role      @default(USER)
  posts     Post[]

  @@map("users")
}

model Post {
  id       Int      @id @default(autoincrement())
  price    Decimal
  author   User     @relation(fields: [authorId], references: [id])
  authorId String
}
`

	models, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"User", "Post"}, models.Names())

	// `@@map("users")` is a single token and is skipped.
	user := models[0]
	assert.Equal(t, []Field{
		{Name: "id", Type: TypeString},
		{Name: "name", Type: TypeString, Optional: true},
		{Name: "role", Type: "Role"},
		{Name: "posts", Type: "Post[]"},
	}, user.Fields)

	post := models[1]
	require.Len(t, post.Fields, 4)
	assert.Equal(t, TypeDecimal, post.Fields[1].Type)
	assert.Equal(t, FieldType("User"), post.Fields[2].Type)
}

func TestParse_SkipsShortLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"blank lines", "model A {\n\n  id String\n\n}", 1},
		{"bare attribute", "model A {\n  id String\n  @@index\n}", 1},
		{"bracket only", "model A {\n  {\n  id String\n}", 1},
		{"empty block", "model A {\n}", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, models, 1)
			assert.Len(t, models[0].Fields, tt.want)
		})
	}
}

func TestParse_MissingModelName(t *testing.T) {
	input := "model User {\n  id String\n}\nmodel\n"

	models, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingModelName))
	assert.Contains(t, err.Error(), "line 4")
	assert.Nil(t, models)
}

func TestParse_ModelPrefixIsNotKeyword(t *testing.T) {
	models, err := Parse(strings.NewReader("modelling notes\nmodel A {\n  id Int\n}"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, models.Names())
}

func TestParse_UnterminatedBlock(t *testing.T) {
	models, err := Parse(strings.NewReader("model A {\n  id Int\n  name String"))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Len(t, models[0].Fields, 2)
}

func TestParse_LongLines(t *testing.T) {
	longValue := strings.Repeat("y", 70000)
	input := "model A {\n" +
		"  id String\n" +
		"  note String @default(\"" + longValue + "\")\n" +
		"}\n" +
		"// " + longValue + "\n" +
		"model B {\n" +
		"  id Int\n" +
		"}\n"

	models, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, []Field{
		{Name: "id", Type: TypeString},
		{Name: "note", Type: TypeString},
	}, models[0].Fields)
	assert.Equal(t, "B", models[1].Name)
}

func TestParse_ModelKeywordInsideBlockIsField(t *testing.T) {
	models, err := Parse(strings.NewReader("model A {\n  model String\n}"))
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []Field{{Name: "model", Type: TypeString}}, models[0].Fields)
}

func TestModels_Lookup(t *testing.T) {
	models := Models{{Name: "User"}, {Name: "Post"}}

	m, ok := models.Lookup("Post")
	assert.True(t, ok)
	assert.Equal(t, "Post", m.Name)

	_, ok = models.Lookup("post")
	assert.False(t, ok)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.prisma")
	require.NoError(t, os.WriteFile(path, []byte("model A {\n  id Int\n}\n"), 0644))

	models, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, models.Names())

	_, err = ParseFile(filepath.Join(dir, "missing.prisma"))
	assert.Error(t, err)
}

func TestFindSchemas(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.prisma"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.prisma"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "migrations"), 0755))

	paths, err := FindSchemas(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.prisma"),
		filepath.Join(dir, "b.prisma"),
	}, paths)

	_, err = FindSchemas(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
