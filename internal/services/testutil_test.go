package services

import (
	"os"
	"testing"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB creates a migrated store backed by a temp sqlite file, removed
// when the test ends.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "gamebank-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{TranslateError: true})
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to open test db: %v", err)
	}
	database.AutoMigrate(db)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile.Name())
	})
	return db
}

// newTestSession creates a session with a host and n extra players, all at
// the given starting balance.
func newTestSession(t *testing.T, db *gorm.DB, balance int64, playerNames ...string) (*SessionCreateResult, []string) {
	t.Helper()

	sessions := NewSessionService(db)
	result, err := sessions.Create("Host", nil, balance)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	ids := make([]string, 0, len(playerNames))
	for _, name := range playerNames {
		p, err := sessions.AddPlayer(result.Session.ID, name, balance)
		if err != nil {
			t.Fatalf("AddPlayer(%s): %v", name, err)
		}
		ids = append(ids, p.ID)
	}
	return result, ids
}
