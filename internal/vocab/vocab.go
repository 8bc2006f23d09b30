// internal/vocab/vocab.go
//
// Vocabulary management: the word-plausibility capability shared by the
// round validator and the opponent model.
//
// Responsibilities:
//   - Load per-category word lists from an environment-provided JSON file
//     or fall back to the embedded defaults.
//   - Maintain sets for quick plausibility lookups.
//   - Supply candidate words by starting letter for opponent generation.
//
// Initialization behavior (Init):
//   1. If VOCAB_FILE is set, load the category→words JSON from that path.
//   2. Otherwise, fall back to the embedded vocabulary from assets.
//
// Environment variables:
//   VOCAB_FILE=/path/to/vocabulary.json
//   VOCAB_STRICT=1   reject words missing from the lists (default: lenient)
//
// Constraints:
//   • Words are normalized to lowercase; entries for unknown categories are
//     dropped at load time.
//   • Lists are ordered common-first; opponent generation relies on that.
//   • Initialization runs once (sync.Once).

package vocab

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/samber/lo"

	"github.com/CamiloDuvane/cwdnometerra/assets"
	"github.com/CamiloDuvane/cwdnometerra/internal/game"
)

var (
	initOnce   sync.Once
	lists      map[game.Category][]string
	sets       map[game.Category]map[string]struct{}
	initialErr error
)

// Init loads the vocabulary exactly once.
// Returns an error if no category ends up with any words.
func Init() error {
	initOnce.Do(func() {
		var raw map[string][]string
		var err error

		if path := os.Getenv("VOCAB_FILE"); path != "" {
			raw, err = readVocabFile(path)
		} else {
			raw, err = assets.Vocabulary()
		}
		if err != nil {
			initialErr = err
			return
		}

		lists = make(map[game.Category][]string, game.NumCategories())
		sets = make(map[game.Category]map[string]struct{}, game.NumCategories())
		total := 0
		for name, words := range raw {
			c := game.Category(name)
			if !game.ValidCategory(c) {
				continue
			}
			clean := lo.FilterMap(words, func(w string, _ int) (string, bool) {
				w = strings.ToLower(strings.TrimSpace(w))
				return w, w != ""
			})
			lists[c] = clean
			sets[c] = lo.SliceToMap(clean, func(w string) (string, struct{}) {
				return w, struct{}{}
			})
			total += len(clean)
		}

		if total == 0 {
			initialErr = errors.New("vocab: vocabulary is empty")
		}
	})
	return initialErr
}

// readVocabFile loads a category→words JSON document from disk.
func readVocabFile(path string) (map[string][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string][]string{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Candidates returns the vocabulary words for a category that start with
// the given letter, in list order (common words first). Empty when the
// vocabulary has nothing for that pairing.
func Candidates(l game.Letter, c game.Category) []string {
	prefix := strings.ToLower(string(l))
	return lo.Filter(lists[c], func(w string, _ int) bool {
		return strings.HasPrefix(w, prefix)
	})
}

// Stats returns counts of loaded data: (categories with words, total words).
func Stats() (categoryCount int, wordCount int) {
	for _, ws := range lists {
		if len(ws) > 0 {
			categoryCount++
		}
		wordCount += len(ws)
	}
	return categoryCount, wordCount
}

// Checker is the list-backed implementation of game.Checker. In lenient
// mode (the default) a word missing from the lists still passes if it
// looks like a real word; strict mode rejects anything unlisted.
type Checker struct {
	Strict bool
}

// NewChecker builds a Checker configured from the VOCAB_STRICT env var.
func NewChecker() *Checker {
	return &Checker{Strict: os.Getenv("VOCAB_STRICT") == "1"}
}

// Plausible reports whether word plausibly belongs to the category.
// The word is expected pre-normalized (lowercase, trimmed).
func (ck *Checker) Plausible(word string, c game.Category) bool {
	if _, ok := sets[c][word]; ok {
		return true
	}
	if ck.Strict {
		return false
	}
	return plausibleShape(word)
}

// plausibleShape is the lenient fallback heuristic: at least two runes,
// letters with optional internal spaces, hyphens, or apostrophes.
func plausibleShape(word string) bool {
	rs := []rune(word)
	if len(rs) < 2 {
		return false
	}
	for _, r := range rs {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return false
	}
	return true
}
