package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloDuvane/cwdnometerra/internal/opponent"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY, username TEXT, password_hash TEXT,
			created_at TEXT, games_played INTEGER DEFAULT 0,
			wins INTEGER DEFAULT 0, streak INTEGER DEFAULT 0
		);
		CREATE TABLE matches (
			id TEXT PRIMARY KEY, user_id TEXT, anonymous_id TEXT,
			letter TEXT, started_at TEXT, finished_at TEXT,
			status TEXT DEFAULT 'playing',
			player_points INTEGER DEFAULT 0, opponent_points INTEGER DEFAULT 0
		);
		CREATE TABLE profiles (
			owner_id TEXT PRIMARY KEY, level INTEGER, experience INTEGER,
			valid_answers INTEGER, attempted_answers INTEGER, updated_at TEXT
		);`)
	require.NoError(t, err)
	return NewStore(db)
}

func TestMatchLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertMatch(ctx, "m1", "", "anon1", "A"))
	require.NoError(t, s.FinishMatch(ctx, "m1", 85, 60))

	require.NoError(t, s.InsertMatch(ctx, "m2", "", "anon1", "B"))
	require.NoError(t, s.AbandonMatch(ctx, "m2"))

	_, err := s.db.Exec(`INSERT INTO users (id, username, password_hash, created_at)
	                     VALUES ('u1','camila','x','2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, s.InsertMatch(ctx, "m3", "u1", "", "C"))
	require.NoError(t, s.FinishMatch(ctx, "m3", 120, 40))

	recent, err := s.Recent(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "finished", recent[0].Status)
	assert.Equal(t, 120, recent[0].PlayerPoints)
}

func TestLeaderboardRegisteredOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`INSERT INTO users (id, username, password_hash, created_at)
	                     VALUES ('u1','camila','x','2025-01-01T00:00:00Z'),
	                            ('u2','pedro','x','2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, s.InsertMatch(ctx, "m1", "u1", "", "A"))
	require.NoError(t, s.FinishMatch(ctx, "m1", 90, 50))
	require.NoError(t, s.InsertMatch(ctx, "m2", "u2", "", "B"))
	require.NoError(t, s.FinishMatch(ctx, "m2", 130, 70))
	// Anonymous rounds never rank.
	require.NoError(t, s.InsertMatch(ctx, "m3", "", "anon1", "C"))
	require.NoError(t, s.FinishMatch(ctx, "m3", 160, 10))

	rows, err := s.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "pedro", rows[0].Username)
	assert.Equal(t, 130, rows[0].PlayerPoints)
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Unsaved owner gets the starting profile.
	p, err := s.LoadProfile(ctx, "anon1")
	require.NoError(t, err)
	assert.Equal(t, opponent.NewProfile(), p)

	saved := opponent.Profile{Level: 3, Experience: 245, Valid: 20, Attempted: 25}
	require.NoError(t, s.SaveProfile(ctx, "anon1", saved))

	p, err = s.LoadProfile(ctx, "anon1")
	require.NoError(t, err)
	assert.Equal(t, saved, p)

	// Upsert replaces, never duplicates.
	saved.Experience = 260
	require.NoError(t, s.SaveProfile(ctx, "anon1", saved))
	p, err = s.LoadProfile(ctx, "anon1")
	require.NoError(t, err)
	assert.Equal(t, 260, p.Experience)
}
