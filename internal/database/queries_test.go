package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultQueries(t *testing.T) {
	q, err := LoadQueries("")
	require.NoError(t, err)

	assert.Contains(t, q.Category.HasChildren, "EXISTS")
	assert.Contains(t, q.Category.Insert, "RETURNING category_id")
	assert.Contains(t, q.Category.SelectParentsForID, ":category_id")
	assert.Contains(t, q.Product.SelectViewsByMixedFilter, ":date_begin")
	assert.Contains(t, q.Product.Insert, "RETURNING prod_id")
}

func TestLoadQueriesMergesOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "queries.yaml")
	content := "category:\n  select_all: |\n    SELECT category_id, category_name, parent_id FROM categories ORDER BY category_name\n"
	require.NoError(t, os.WriteFile(override, []byte(content), 0o600))

	q, err := LoadQueries(override)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(strings.TrimSpace(q.Category.SelectAll), "ORDER BY category_name"))
	// untouched keys keep their embedded value
	assert.Contains(t, q.Category.Delete, "DELETE FROM categories")
	assert.NotEmpty(t, q.Product.SelectAll)
}

func TestLoadQueriesRejectsEmptyStatement(t *testing.T) {
	override := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(override, []byte("product:\n  delete: \"\"\n"), 0o600))

	_, err := LoadQueries(override)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProductQueries.Delete")
}

func TestLoadQueriesMissingFile(t *testing.T) {
	_, err := LoadQueries(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
