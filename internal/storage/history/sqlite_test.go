package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/dapnet/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAdd_CallRoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	sent := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	rec := &Record{
		Kind:       KindCall,
		Text:       "Gruss aus M?nchen",
		Original:   "Gruss aus München",
		Emergency:  true,
		Recipients: []string{"m0nxn", "dl1abc"},
		Groups:     []string{"uk-all", "dl-all"},
		SentAt:     sent,
	}
	require.NoError(t, r.Add(ctx, rec))
	assert.NotZero(t, rec.ID)

	got, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	want := *rec
	assert.Empty(t, cmp.Diff(want, got[0], cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })))
}

func TestAdd_NewsRoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, &Record{Kind: KindNews, Text: "contest today", Original: "contest today", Rubric: "dx", Number: 3}))

	got, err := r.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, KindNews, got[0].Kind)
	assert.Equal(t, "dx", got[0].Rubric)
	assert.Equal(t, 3, got[0].Number)
	assert.Nil(t, got[0].Recipients)
	assert.Nil(t, got[0].Groups)
	assert.False(t, got[0].SentAt.IsZero(), "zero SentAt is filled in")
}

func TestList_NewestFirstAndLimit(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"one", "two", "three"} {
		require.NoError(t, r.Add(ctx, &Record{
			Kind: KindCall, Text: text, Original: text,
			Recipients: []string{"m0nxn"}, Groups: []string{"all"},
			SentAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Text)
	assert.Equal(t, "two", all[1].Text)
	assert.Equal(t, "one", all[2].Text)
	for _, rec := range all {
		assert.Equal(t, []string{"m0nxn"}, rec.Recipients)
		assert.Equal(t, []string{"all"}, rec.Groups)
	}

	two, err := r.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "three", two[0].Text)
}

func TestList_Empty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.List(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAdd_RejectsUnknownKindAtomically(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	err := r.Add(ctx, &Record{Kind: "fax", Text: "x", Original: "x", Recipients: []string{"a"}})
	require.Error(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM message_targets`).Scan(&n))
	assert.Zero(t, n)
}

func TestList_ClosedDB(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.List(context.Background(), 1)
	require.Error(t, err)
}
