package opponent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CamiloDuvane/cwdnometerra/internal/game"
)

// richSource always offers candidates; emptySource never does.
func richSource(l game.Letter, c game.Category) []string {
	p := strings.ToLower(string(l))
	return []string{p + "lpha", p + "ravo", p + "harlie", p + "elta"}
}

func emptySource(game.Letter, game.Category) []string { return nil }

// verdictWith builds a complete verdict where the opponent answered the
// first `valid` categories validly and attempted-but-failed the next
// `invalid` ones.
func verdictWith(t *testing.T, valid, invalid int) *game.Verdict {
	t.Helper()
	require.LessOrEqual(t, valid+invalid, game.NumCategories())
	v := &game.Verdict{Letter: "A"}
	for i, c := range game.Categories() {
		r := game.CategoryResult{Category: c}
		switch {
		case i < valid:
			r.OpponentAnswer = "alpha"
			r.OpponentValid = true
			r.OpponentPoints = game.PointsUnique
			v.OpponentTotal += r.OpponentPoints
		case i < valid+invalid:
			r.OpponentAnswer = "zeta" // wrong letter: attempted, invalid
		}
		v.Results = append(v.Results, r)
	}
	return v
}

func TestGenerateAnswersAlwaysComplete(t *testing.T) {
	m := NewModel(NewProfile(), richSource, 1)
	as := m.GenerateAnswers(context.Background(), "B")
	assert.True(t, as.Complete())
	for c, w := range as {
		if w != "" {
			assert.True(t, strings.HasPrefix(w, "b"), "category %s got %q", c, w)
		}
	}
}

func TestGenerateAnswersEmptyVocabulary(t *testing.T) {
	m := NewModel(NewProfile(), emptySource, 1)
	as := m.GenerateAnswers(context.Background(), "A")
	assert.True(t, as.Complete())
	for _, w := range as {
		assert.Empty(t, w)
	}
}

func TestGenerateAnswersUnusableLetterBlank(t *testing.T) {
	m := NewModel(NewProfile(), richSource, 1)
	for _, bad := range []game.Letter{"", "AB", "7"} {
		as := m.GenerateAnswers(context.Background(), bad)
		assert.True(t, as.Complete())
		for _, w := range as {
			assert.Empty(t, w)
		}
	}
}

func TestGenerateAnswersDeterministicPerSeed(t *testing.T) {
	a := NewModel(NewProfile(), richSource, 42).GenerateAnswers(context.Background(), "C")
	b := NewModel(NewProfile(), richSource, 42).GenerateAnswers(context.Background(), "C")
	assert.Equal(t, a, b)
}

func TestGenerateAnswersCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewModel(NewProfile(), richSource, 1)
	as := m.GenerateAnswers(ctx, "A")
	assert.True(t, as.Complete())
	for _, w := range as {
		assert.Empty(t, w)
	}
}

func TestRecordOutcomeAccumulates(t *testing.T) {
	m := NewModel(NewProfile(), richSource, 1)
	p := m.RecordOutcome(verdictWith(t, 3, 2))

	assert.Equal(t, 3*10+2*2, p.Experience)
	assert.Equal(t, 3, p.Valid)
	assert.Equal(t, 5, p.Attempted)
	assert.Equal(t, 1, p.Level)
	assert.InDelta(t, 60.0, p.SuccessRate(), 0.001)
}

func TestRecordOutcomeMonotonic(t *testing.T) {
	m := NewModel(NewProfile(), richSource, 1)
	prevXP, prevLvl := 0, 1
	for i := 0; i < 25; i++ {
		p := m.RecordOutcome(verdictWith(t, i%5, (i+1)%3))
		assert.GreaterOrEqual(t, p.Experience, prevXP)
		assert.GreaterOrEqual(t, p.Level, prevLvl)
		rate := p.SuccessRate()
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
		prevXP, prevLvl = p.Experience, p.Level
	}
}

func TestRecordOutcomeLevelsUp(t *testing.T) {
	m := NewModel(NewProfile(), richSource, 1)
	var p Profile
	for i := 0; i < 10; i++ {
		p = m.RecordOutcome(verdictWith(t, game.NumCategories(), 0))
	}
	// 10 rounds × 16 valid answers × 10 XP
	assert.GreaterOrEqual(t, p.Experience, 1600)
	assert.GreaterOrEqual(t, p.Level, 17)
	assert.InDelta(t, 100.0, p.SuccessRate(), 0.001)
}

func TestRecordOutcomeMalformedVerdictIsNoop(t *testing.T) {
	m := NewModel(Profile{Level: 2, Experience: 150, Valid: 10, Attempted: 12}, richSource, 1)
	before := m.Profile()

	assert.Equal(t, before, m.RecordOutcome(nil))
	assert.Equal(t, before, m.RecordOutcome(&game.Verdict{}))

	truncated := verdictWith(t, 2, 0)
	truncated.Results = truncated.Results[:4]
	assert.Equal(t, before, m.RecordOutcome(truncated))

	assert.Equal(t, before, m.Profile())
}

func TestProfileSuccessRateNoAttempts(t *testing.T) {
	assert.Zero(t, NewProfile().SuccessRate())
}

func TestExperienceInLevel(t *testing.T) {
	p := Profile{Level: 3, Experience: 245}
	assert.Equal(t, 45, p.ExperienceInLevel())
}
