package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte(`{"a":1}`)))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), v)
}

func TestGet_Absent_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestList_FiltersByPrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "cookie:session", []byte("a")))
	require.NoError(t, r.Set(ctx, "cookie:other", []byte("b")))
	require.NoError(t, r.Set(ctx, "preferences", []byte("c")))

	m, err := r.List(ctx, "cookie:")
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte("a"), m["cookie:session"])

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get metadata[k]")
	assert.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	assert.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	_, err = r.List(ctx, "")
	assert.ErrorContains(t, err, "failed to list metadata")
}

func TestJSONHelpers(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	type rec struct {
		N int `json:"n"`
	}

	var got rec
	found, err := GetJSON(ctx, r, "rec", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, r, "rec", rec{N: 7}))
	found, err = GetJSON(ctx, r, "rec", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, got.N)

	require.NoError(t, r.Set(ctx, "rec", []byte("{not json")))
	found, err = GetJSON(ctx, r, "rec", &got)
	assert.True(t, found)
	assert.ErrorContains(t, err, "decode metadata[rec]")
}

func TestUpdate_CommitsWrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.Update(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Set(ctx, "a", []byte("1")); err != nil {
			return err
		}
		return repo.Set(ctx, "b", []byte("2"))
	})
	require.NoError(t, err)

	got, err := r.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, got)
}

func TestUpdate_ErrorRollsBack(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "a", []byte("old")))

	boom := errors.New("boom")
	err := r.Update(ctx, func(ctx context.Context, repo Repository) error {
		require.NoError(t, repo.Set(ctx, "a", []byte("new")))
		require.NoError(t, repo.Set(ctx, "b", []byte("2")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v)

	v, err = r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestUpdate_NestedRunsInsideOuterTransaction(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.Update(ctx, func(ctx context.Context, outer Repository) error {
		return outer.Update(ctx, func(ctx context.Context, inner Repository) error {
			assert.Same(t, outer, inner)
			return inner.Set(ctx, "k", []byte("v"))
		})
	})
	require.NoError(t, err)

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
