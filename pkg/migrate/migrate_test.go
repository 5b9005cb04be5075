package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDir(t *testing.T) {
	// The shipped migrations must always pass validation.
	require.NoError(t, ValidateDir("migrations"))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad name.sql"), []byte("-- +goose Up"), 0o644))
	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Loyalty Points!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_loyalty_points.sql"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "-- +goose Down")

	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "")
	require.Error(t, err)
}
