package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inkdex/inkdex/db"
	"github.com/stretchr/testify/assert"
)

// TestInitDB initializes the cache in a temporary directory and checks that
// the database file is created.
func TestInitDB(t *testing.T) {
	tempDir := t.TempDir()
	db.Path = filepath.Join(tempDir, ".inkdex/cache.db")
	err := db.InitDB()
	assert.NoError(t, err, "InitDB should not return an error")

	_, statErr := os.Stat(db.Path)
	assert.NoError(t, statErr, "Database file should exist")

	closeErr := db.CloseDB()
	assert.NoError(t, closeErr, "CloseDB should not return an error")
}
