// Package testutil opens throwaway databases and builds fixture rows for
// tests.
package testutil

import (
	"io"
	"testing"

	"hospital-management/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Logger returns a logger that discards output.
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewDB opens a migrated in-memory SQLite database that lives for the test.
// The pool holds a single connection, so code under test must issue every
// statement of a transaction through the transaction handle.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")), Logger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db, Logger()))
	return db
}
