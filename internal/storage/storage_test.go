package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

var _ Repository = (*MemoryRepository)(nil)
var _ Repository = (*PostgresRepository)(nil)

func testGame(id string, updated time.Time) *models.GameState {
	return &models.GameState{
		ID:         id,
		Name:       "game " + id,
		Date:       calendar.MustParse("1-01-01"),
		Treasury:   500,
		Difficulty: models.DifficultyNormal,
		Cargo:      map[string]int{},
		CreatedAt:  updated,
		UpdatedAt:  updated,
	}
}

func TestMemoryRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	g := testGame("g1", now)
	require.NoError(t, repo.CreateGame(ctx, g))
	assert.ErrorIs(t, repo.CreateGame(ctx, g), gameerr.ErrConstraint)

	loaded, err := repo.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 500, loaded.Treasury)

	// mutating the copy does not touch the store
	loaded.Treasury = 1
	again, err := repo.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 500, again.Treasury)

	loaded.Date = calendar.MustParse("1-02-10")
	require.NoError(t, repo.SaveGame(ctx, loaded))
	again, err = repo.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Treasury)
	assert.Equal(t, calendar.MustParse("1-02-10"), again.Date)

	missing, err := repo.GetGame(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.SaveGame(ctx, testGame("nope", now)), gameerr.ErrNotFound)
	require.NoError(t, repo.DeleteGame(ctx, "g1"))
	assert.ErrorIs(t, repo.DeleteGame(ctx, "g1"), gameerr.ErrNotFound)
}

func TestMemoryRepositoryListing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.CreateGame(ctx, testGame(id, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := repo.ListGames(ctx, models.ListFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	page, err := repo.ListGames(ctx, models.ListFilters{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)

	empty, err := repo.ListGames(ctx, models.ListFilters{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, empty)

	stale, err := repo.GetStaleGames(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, "a", stale[0].ID)
	assert.Equal(t, "b", stale[1].ID)
}

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_b.sql"), []byte("SELECT 2;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_a.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	migrations, err := LoadMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_a.sql", migrations[0].Name)
	assert.Equal(t, "SELECT 2;", migrations[1].SQL)

	pending := Pending(migrations, map[string]bool{"001_a.sql": true})
	require.Len(t, pending, 1)
	assert.Equal(t, "002_b.sql", pending[0].Name)
	assert.Empty(t, Pending(migrations, map[string]bool{"001_a.sql": true, "002_b.sql": true}))
}

func TestLoadMigrationsErrors(t *testing.T) {
	_, err := LoadMigrations(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_blank.sql"), []byte("  \n"), 0o644))
	_, err = LoadMigrations(dir)
	assert.ErrorContains(t, err, "empty")
}

func TestBundledMigrations(t *testing.T) {
	migrations, err := LoadMigrations("../../migrations")
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS games")
}
