package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLetter(t *testing.T) {
	l, err := ParseLetter("a")
	require.NoError(t, err)
	assert.Equal(t, Letter("A"), l)

	l, err = ParseLetter("Z")
	require.NoError(t, err)
	assert.Equal(t, Letter("Z"), l)

	for _, bad := range []string{"", "AB", "1", "?", " "} {
		_, err := ParseLetter(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDrawLetterAvoidsExclusions(t *testing.T) {
	for i := 0; i < 200; i++ {
		l := DrawLetter()
		r := l.Rune()
		assert.NotContains(t, []rune{'K', 'Q', 'W', 'X', 'Y', 'Z'}, r)
		assert.GreaterOrEqual(t, r, 'A')
		assert.LessOrEqual(t, r, 'Z')
	}
}

func TestDailyLetterDeterministic(t *testing.T) {
	day := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
	a := DailyLetter(day, "salt")
	b := DailyLetter(day.Add(3*time.Hour), "salt") // same UTC date
	assert.Equal(t, a, b)

	other := DailyLetter(day.AddDate(0, 0, 1), "salt")
	sameDayOtherSalt := DailyLetter(day, "pepper")
	// Different inputs usually give different letters; at minimum the
	// function must stay within the playable alphabet.
	for _, l := range []Letter{a, other, sameDayOtherSalt} {
		_, excludedHit := excluded[l.Rune()]
		assert.False(t, excludedHit)
	}
}
