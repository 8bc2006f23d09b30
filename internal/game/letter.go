// internal/game/letter.go
//
// Letter handling for round setup.
// Responsibilities:
//   - Parse and validate the single uppercase letter a round is played on.
//   - Draw a random letter from the playable alphabet (rare letters excluded).
//   - Derive a deterministic daily letter using HMAC(salt, YYYY-MM-DD),
//     so every player sees the same letter on the daily mode for a date.

package game

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"
	"time"
	"unicode"
)

// Letter is the single uppercase character a round is played on.
// Immutable for the duration of a round.
type Letter string

// excluded are letters too rare to fill sixteen categories with. Rounds are
// never drawn on them, though ParseLetter still accepts them for replaying
// persisted history.
var excluded = map[rune]struct{}{
	'K': {}, 'Q': {}, 'W': {}, 'X': {}, 'Y': {}, 'Z': {},
}

// alphabet is the playable draw pool: A–Z minus the exclusion set.
var alphabet = func() []Letter {
	var out []Letter
	for r := 'A'; r <= 'Z'; r++ {
		if _, skip := excluded[r]; skip {
			continue
		}
		out = append(out, Letter(r))
	}
	return out
}()

var errBadLetter = errors.New("game: letter must be a single alphabetic character")

// ParseLetter validates and canonicalizes a raw letter string.
// Accepts a single ASCII letter in either case; returns it uppercased.
func ParseLetter(raw string) (Letter, error) {
	rs := []rune(raw)
	if len(rs) != 1 {
		return "", errBadLetter
	}
	r := unicode.ToUpper(rs[0])
	if r < 'A' || r > 'Z' {
		return "", errBadLetter
	}
	return Letter(r), nil
}

// Rune returns the letter as an uppercase rune.
func (l Letter) Rune() rune { return []rune(string(l))[0] }

// DrawLetter picks a cryptographically random letter from the playable
// alphabet. Falls back to 'A' if the entropy source fails.
func DrawLetter() Letter {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return alphabet[0]
	}
	return alphabet[n.Int64()]
}

// DailyLetter returns a deterministic letter for a date using
// HMAC(salt, YYYY-MM-DD) % len(alphabet). Same date + salt always yields
// the same letter.
func DailyLetter(date time.Time, salt string) Letter {
	dk := date.UTC().Format("2006-01-02")
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return alphabet[int(n%uint64(len(alphabet)))]
}
