// internal/opponent/opponent.go
//
// The synthetic opponent: answer generation plus the persistent skill
// profile that evolves round over round.
//
// Responsibilities:
//   - GenerateAnswers: one candidate word per category for a letter, with
//     hit rate and vocabulary depth scaled by the current level.
//   - RecordOutcome: fold a round verdict into the profile (experience,
//     level, success counters). The model is the profile's only writer.
//
// Notes:
//   - Each game session owns its own Model; profiles are never shared
//     across sessions, so no locking is needed here.
//   - Generation is randomized within a bounded distribution: the fill
//     probability for a category is 0.55 + 0.05·level, capped at 0.95,
//     and word choice is uniform over the first 3+level candidates.
//     A seeded RNG makes the distribution reproducible in tests.

package opponent

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/CamiloDuvane/cwdnometerra/internal/game"
)

// Experience weights and the level-up threshold.
const (
	xpValidAnswer   = 10 // category answered validly
	xpAttempted     = 2  // category attempted but judged invalid
	levelThreshold  = 100
	baseFillChance  = 0.55
	fillPerLevel    = 0.05
	maxFillChance   = 0.95
	baseVocabDepth  = 3 // low levels stick to the most common words
)

// Profile is the opponent's persistent skill state. Experience and the
// success counters are monotone: they never decrease over a profile's
// lifetime.
type Profile struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
	Valid      int `json:"valid"`     // valid answers across all rounds
	Attempted  int `json:"attempted"` // non-empty answers across all rounds
}

// NewProfile returns the starting profile: level 1, nothing accumulated.
func NewProfile() Profile {
	return Profile{Level: 1}
}

// SuccessRate is the cumulative percentage of attempted answers judged
// valid, clamped to [0,100]. Zero until the first attempt.
func (p Profile) SuccessRate() float64 {
	if p.Attempted <= 0 {
		return 0
	}
	r := float64(p.Valid) / float64(p.Attempted) * 100
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

// ExperienceInLevel is the display value: progress toward the next level.
func (p Profile) ExperienceInLevel() int {
	return p.Experience % levelThreshold
}

// WordSource supplies candidate words for a (letter, category) pairing,
// ordered common-first. Satisfied by vocab.Candidates in production and by
// fixed tables in tests.
type WordSource func(game.Letter, game.Category) []string

// Model generates answers for the current profile and folds verdicts back
// into it. The mutex only covers the profile snapshot: generation of a
// slow round can still be unwinding when the next round's outcome lands.
type Model struct {
	mu      sync.Mutex
	profile Profile
	source  WordSource
	rng     *rand.Rand
}

// NewModel builds a Model around an existing profile. The seed fixes the
// generation distribution; use a random seed in production and a constant
// one in tests.
func NewModel(p Profile, source WordSource, seed int64) *Model {
	if p.Level < 1 {
		p.Level = 1
	}
	return &Model{profile: p, source: source, rng: rand.New(rand.NewSource(seed))}
}

// Profile returns the current profile snapshot.
func (m *Model) Profile() Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// GenerateAnswers produces one candidate answer per category for the
// letter. Pure with respect to the profile: it reads the level, mutates
// nothing. Never fails — categories without a candidate, an unfamiliar
// letter, or a cancelled context all degrade to empty strings, so the
// round can always be scored.
func (m *Model) GenerateAnswers(ctx context.Context, letter game.Letter) game.AnswerSet {
	out := game.EmptyAnswerSet()
	if _, err := game.ParseLetter(string(letter)); err != nil {
		log.Warn().Str("letter", string(letter)).Msg("opponent: unusable letter, answering blank")
		return out
	}

	level := m.Profile().Level
	fill := baseFillChance + fillPerLevel*float64(level)
	if fill > maxFillChance {
		fill = maxFillChance
	}
	depth := baseVocabDepth + level

	for _, c := range game.Categories() {
		select {
		case <-ctx.Done():
			// Remaining categories stay blank; the controller scores
			// whatever was materialized in time.
			return out
		default:
		}

		candidates := m.source(letter, c)
		if len(candidates) == 0 {
			continue
		}
		if m.rng.Float64() > fill {
			continue // the opponent "couldn't think of one"
		}
		n := depth
		if n > len(candidates) {
			n = len(candidates)
		}
		out[c] = candidates[m.rng.Intn(n)]
	}
	return out
}

// RecordOutcome folds a round verdict into the profile and returns the
// updated copy. The update is computed from the old profile plus the
// verdict; nothing else writes the profile. A malformed verdict (wrong
// category set) leaves the profile untouched — experience and level never
// roll back and never jump from bad input.
func (m *Model) RecordOutcome(v *game.Verdict) Profile {
	if !v.Complete() {
		log.Warn().Msg("opponent: malformed verdict, profile unchanged")
		return m.Profile()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.profile
	for _, r := range v.Results {
		switch {
		case r.OpponentValid:
			next.Experience += xpValidAnswer
			next.Valid++
			next.Attempted++
		case strings.TrimSpace(r.OpponentAnswer) != "":
			next.Experience += xpAttempted
			next.Attempted++
		}
	}
	next.Level = 1 + next.Experience/levelThreshold

	m.profile = next
	return next
}
