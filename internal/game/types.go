// internal/game/types.go
//
// Core type definitions for the categories game engine.
// Defines:
//   - Category: closed, ordered enumeration of the answer slots in a round.
//   - AnswerSet: one side's answers, always carrying the full category set.
//   - CategoryResult / Verdict: the immutable outcome of scoring one round.

package game

import "errors"

// Category is one of the fixed semantic slots every round's answers must
// cover. The set is closed and ordered; output always follows declaration
// order so display stays deterministic.
type Category string

const (
	CategoryName       Category = "name"
	CategoryPlace      Category = "place"
	CategoryCountry    Category = "country"
	CategoryAnimal     Category = "animal"
	CategoryObject     Category = "object"
	CategoryColor      Category = "color"
	CategoryElement    Category = "element"
	CategoryProfession Category = "profession"
	CategoryMedia      Category = "media"
	CategoryBrand      Category = "brand"
	CategoryPlant      Category = "plant"
	CategoryVerb       Category = "verb"
	CategoryAdjective  Category = "adjective"
	CategoryEmotion    Category = "emotion"
	CategoryContinent  Category = "continent"
	CategoryFruit      Category = "fruit"
)

// categories is the canonical ordering. Do not reorder: round verdicts and
// the HTTP API expose categories in this sequence.
var categories = []Category{
	CategoryName, CategoryPlace, CategoryCountry, CategoryAnimal,
	CategoryObject, CategoryColor, CategoryElement, CategoryProfession,
	CategoryMedia, CategoryBrand, CategoryPlant, CategoryVerb,
	CategoryAdjective, CategoryEmotion, CategoryContinent, CategoryFruit,
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(categories))
	for _, c := range categories {
		m[c] = struct{}{}
	}
	return m
}()

// Categories returns the full category set in canonical order.
// The returned slice is a copy; callers may not mutate engine state.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// NumCategories is the size of the fixed category set (16).
func NumCategories() int { return len(categories) }

// ValidCategory reports whether c belongs to the closed enumeration.
func ValidCategory(c Category) bool {
	_, ok := categorySet[c]
	return ok
}

// AnswerSet maps every category to one side's free-text answer for a round.
// Answers are stored raw: trimming and case-folding happen at validation
// time, never at capture time.
type AnswerSet map[Category]string

// NewAnswerSet builds an AnswerSet carrying the full category set, filling
// any category missing from raw with the empty string. Unknown keys in raw
// are dropped so a malformed client payload cannot widen the enumeration.
func NewAnswerSet(raw map[string]string) AnswerSet {
	as := make(AnswerSet, len(categories))
	for _, c := range categories {
		as[c] = raw[string(c)]
	}
	return as
}

// EmptyAnswerSet returns an AnswerSet with every category blank. Used when
// opponent generation times out or a side gave no answers at all.
func EmptyAnswerSet() AnswerSet {
	return NewAnswerSet(nil)
}

// Complete reports whether the set carries exactly the fixed categories,
// no more, no fewer.
func (as AnswerSet) Complete() bool {
	if len(as) != len(categories) {
		return false
	}
	for _, c := range categories {
		if _, ok := as[c]; !ok {
			return false
		}
	}
	return true
}

// CategoryResult records the judgment of one category for both sides.
type CategoryResult struct {
	Category       Category `json:"category"`
	HumanAnswer    string   `json:"humanAnswer"`
	OpponentAnswer string   `json:"opponentAnswer"`
	HumanValid     bool     `json:"humanValid"`
	OpponentValid  bool     `json:"opponentValid"`
	HumanPoints    int      `json:"humanPoints"`
	OpponentPoints int      `json:"opponentPoints"`
}

// Verdict is the full scoring result for one round. Created fresh by
// Validate, never mutated afterwards; the round controller owns it and
// forwards it to presentation and persistence.
type Verdict struct {
	Letter        Letter           `json:"letter"`
	Results       []CategoryResult `json:"results"` // canonical category order
	PlayerTotal   int              `json:"playerTotal"`
	OpponentTotal int              `json:"opponentTotal"`
}

// Complete reports whether the verdict covers exactly the fixed category
// set in canonical order. The opponent model checks this before touching
// its profile counters.
func (v *Verdict) Complete() bool {
	if v == nil || len(v.Results) != len(categories) {
		return false
	}
	for i, c := range categories {
		if v.Results[i].Category != c {
			return false
		}
	}
	return true
}

// ErrIncompleteAnswers is returned when an answer set does not carry the
// full category enumeration.
var ErrIncompleteAnswers = errors.New("game: answer set missing required categories")
