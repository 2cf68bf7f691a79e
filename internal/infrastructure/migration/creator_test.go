package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hoshop/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add reviews table", "add_reviews_table"},
		{"Add-Reviews-Table", "add_reviews_table"},
		{"ADD_REVIEWS_TABLE", "add_reviews_table"},
		{"add__reviews__table", "add_reviews_table"},
		{"Add Reviews 123", "add_reviews_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add reviews table", "Store product reviews", createdAt)
	require.NoError(t, err)
	assert.Equal(t, "000001", mf.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_reviews_table.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_reviews_table.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add reviews table")
	assert.Contains(t, string(up), "Store product reviews")
	assert.Contains(t, string(up), "2025-03-10T09:00:00Z")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")

	next, err := CreateMigration(dir, "index orders", "", createdAt)
	require.NoError(t, err)
	assert.Equal(t, "000002", next.Version)
	assert.True(t, strings.HasSuffix(next.UpPath, "000002_index_orders.up.sql"))

	require.NoError(t, CheckPairs(os.DirFS(dir)))
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "", createdAt)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "", createdAt)
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_add_orders.up.sql":    {Data: []byte("--")},
		"000002_add_orders.down.sql":  {Data: []byte("--")},
		"000001_init_schema.up.sql":   {Data: []byte("--")},
		"000001_init_schema.down.sql": {Data: []byte("--")},
		"README.md":                   {Data: []byte("docs")},
		"embed.go":                    {Data: []byte("package migrations")},
		"subdir.up.sql/keep":          {Data: []byte("")},
	}

	got, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init_schema", "000002_add_orders"}, got)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	got, err := ListMigrations(os.DirFS("/nonexistent/path/to/migrations"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckPairs(t *testing.T) {
	t.Run("missing down file", func(t *testing.T) {
		fsys := fstest.MapFS{"000001_init.up.sql": {Data: []byte("--")}}
		err := CheckPairs(fsys)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no down file")
	})

	t.Run("gap in versions", func(t *testing.T) {
		fsys := fstest.MapFS{
			"000001_init.up.sql":   {Data: []byte("--")},
			"000001_init.down.sql": {Data: []byte("--")},
			"000003_late.up.sql":   {Data: []byte("--")},
			"000003_late.down.sql": {Data: []byte("--")},
		}
		err := CheckPairs(fsys)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 2")
	})
}

func TestEmbeddedSchema(t *testing.T) {
	require.NoError(t, CheckPairs(migrations.FS))

	got, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_catalog", "000002_create_orders", "000003_create_finance"}, got)
}
