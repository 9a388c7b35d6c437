package dataset_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/metadia/internal/database"
	"github.com/MrJamesThe3rd/metadia/internal/dataset"
)

func newStore(t *testing.T) *dataset.Store {
	t.Helper()

	db, err := database.New(database.DriverSQLite, filepath.Join(t.TempDir(), "metadia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return dataset.New(db, database.DriverSQLite)
}

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Get(ctx, "transactions")
	assert.ErrorIs(t, err, dataset.ErrNotFound)

	require.NoError(t, s.Put(ctx, "transactions", `[{"id":"a"}]`))
	require.NoError(t, s.Put(ctx, "goalSettings", `{"startDayOfMonth":10}`))

	got, err := s.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, got)

	require.NoError(t, s.Put(ctx, "transactions", `[]`))

	got, err = s.Get(ctx, "transactions")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"goalSettings", "transactions"}, names)
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := database.New("oracle", "x")
	assert.ErrorContains(t, err, "unknown database driver")
}
