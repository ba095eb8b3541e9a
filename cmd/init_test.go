package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylinq/askhr/internal/config"
)

func TestOpenDatabaseSQLite(t *testing.T) {
	cfg = &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite",
		URL:    filepath.Join(t.TempDir(), "hr.db"),
	}}

	database, err := openDatabase(context.Background())
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, database.Ping(context.Background()))
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	cfg = &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}

	_, err := openDatabase(context.Background())
	assert.ErrorContains(t, err, "unknown database driver")
}
