// internal/history/store.go
//
// Database persistence for completed rounds and opponent profile
// aggregates. The game core never touches this package: it treats
// persistence as an opaque append/read service keyed by owner and time,
// which is exactly the surface exposed here.
//
// Tables (see sql/001_init.sql):
//   - matches:  one row per round, created at start, finalized at finish.
//   - profiles: one opponent profile aggregate per owner (user or anon).

package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/CamiloDuvane/cwdnometerra/internal/opponent"
)

// Store wraps the database handle for round history and profiles.
type Store struct{ db *sql.DB }

// NewStore builds a Store over an open database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// MatchRecord is the persisted shape of one round.
type MatchRecord struct {
	ID             string `json:"id"`
	Letter         string `json:"letter"`
	Status         string `json:"status"` // "playing" | "finished" | "abandoned"
	PlayerPoints   int    `json:"playerPoints"`
	OpponentPoints int    `json:"opponentPoints"`
	StartedAt      string `json:"startedAt"`
	FinishedAt     string `json:"finishedAt,omitempty"`
}

// InsertMatch records a freshly started round for an owner. Exactly one of
// userID/anonID should be set; the other is stored NULL.
func (s *Store) InsertMatch(ctx context.Context, id, userID, anonID, letter string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, user_id, anonymous_id, letter, started_at, status)
		VALUES (?, NULLIF(?,''), NULLIF(?,''), ?, ?, 'playing')`,
		id, userID, anonID, letter, now,
	)
	return err
}

// FinishMatch finalizes a round row with its totals.
func (s *Store) FinishMatch(ctx context.Context, id string, playerPts, opponentPts int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		UPDATE matches
		SET status='finished', finished_at=?, player_points=?, opponent_points=?
		WHERE id=?`,
		now, playerPts, opponentPts, id,
	)
	return err
}

// AbandonMatch marks a round abandoned. No points are recorded.
func (s *Store) AbandonMatch(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		UPDATE matches SET status='abandoned', finished_at=? WHERE id=?`,
		now, id,
	)
	return err
}

// Recent returns an owner's latest rounds, newest first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, letter, status, player_points, opponent_points,
		       started_at, COALESCE(finished_at,'')
		FROM matches WHERE user_id=? ORDER BY started_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MatchRecord{}
	for rows.Next() {
		var r MatchRecord
		if err := rows.Scan(&r.ID, &r.Letter, &r.Status, &r.PlayerPoints,
			&r.OpponentPoints, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LBRow is one leaderboard entry: a player's best finished round.
type LBRow struct {
	Username     string `json:"username"`
	PlayerPoints int    `json:"playerPoints"`
	Letter       string `json:"letter"`
	FinishedAt   string `json:"finishedAt"`
}

// Leaderboard fetches the top finished rounds by player points,
// registered users only. Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.username, m.player_points, m.letter, m.finished_at
		FROM matches m JOIN users u ON u.id = m.user_id
		WHERE m.status='finished'
		ORDER BY m.player_points DESC, m.finished_at ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.PlayerPoints, &r.Letter, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadProfile returns the persisted opponent profile for an owner, or the
// starting profile if none has been saved yet.
func (s *Store) LoadProfile(ctx context.Context, ownerID string) (opponent.Profile, error) {
	var p opponent.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT level, experience, valid_answers, attempted_answers
		FROM profiles WHERE owner_id=?`, ownerID,
	).Scan(&p.Level, &p.Experience, &p.Valid, &p.Attempted)
	if err == sql.ErrNoRows {
		return opponent.NewProfile(), nil
	}
	if err != nil {
		return opponent.NewProfile(), err
	}
	return p, nil
}

// SaveProfile upserts the opponent profile aggregate for an owner.
func (s *Store) SaveProfile(ctx context.Context, ownerID string, p opponent.Profile) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (owner_id, level, experience, valid_answers, attempted_answers, updated_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(owner_id) DO UPDATE SET
			level=excluded.level,
			experience=excluded.experience,
			valid_answers=excluded.valid_answers,
			attempted_answers=excluded.attempted_answers,
			updated_at=excluded.updated_at`,
		ownerID, p.Level, p.Experience, p.Valid, p.Attempted, now,
	)
	return err
}
