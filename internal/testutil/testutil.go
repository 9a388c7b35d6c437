// Package testutil wires a real state store on a throwaway SQLite database for tests that cross
// package boundaries.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrJamesThe3rd/metadia/internal/database"
	"github.com/MrJamesThe3rd/metadia/internal/dataset"
	"github.com/MrJamesThe3rd/metadia/internal/state"
)

// Now is the fixed clock used by stores from NewStore.
var Now = time.Date(2024, time.March, 10, 15, 0, 0, 0, time.Local)

// NewStore opens a migrated SQLite database under t.TempDir and loads a state store from it.
func NewStore(t *testing.T) (*state.Store, *dataset.Store) {
	t.Helper()

	db, err := database.New(database.DriverSQLite, filepath.Join(t.TempDir(), "metadia.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	kv := dataset.New(db, database.DriverSQLite)

	st, err := state.Open(context.Background(), kv, state.WithClock(func() time.Time { return Now }))
	if err != nil {
		t.Fatalf("failed to open state store: %v", err)
	}

	return st, kv
}
