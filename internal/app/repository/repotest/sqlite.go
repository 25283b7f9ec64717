// Package repotest opens a repository on an in-memory SQLite database.
package repotest

import (
	"fleet_registry/internal/app/repository"
	"fleet_registry/internal/app/storage/storagetest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTKey = "test-signing-key"

// New returns a migrated repository backed by its own database and an
// in-memory blob store. Sessions are disabled.
func New(t testing.TB) (*repository.Repository, *storagetest.Memory) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(repository.Models()...))

	blobs := storagetest.NewMemory()
	return repository.NewWithDB(db, nil, blobs, JWTKey), blobs
}
