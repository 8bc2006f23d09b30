// internal/game/validate.go
//
// Round validator: the scoring rules engine.
// Responsibilities:
//   - Judge each category answer for both sides against the round's letter.
//   - Apply the classic cross-answer award (duplicate 5/5, unique 10/10,
//     one-sided 10/0, none 0/0).
//   - Produce the immutable Verdict consumed by the controller, the
//     presentation layer, and the opponent model.
//
// Notes:
//   - Validate is pure: same inputs, same verdict, no hidden state.
//   - Plausibility judgment is a pluggable capability (Checker); the
//     validator depends on it but does not own a vocabulary.

package game

import (
	"fmt"
	"strings"
)

// Per-category awards. A duplicate valid answer earns the reduced award,
// a unique valid answer the full one.
const (
	PointsUnique    = 10
	PointsDuplicate = 5
)

// Checker is the pluggable word-plausibility capability: does this word
// plausibly belong to the category? Implemented by the vocab package in
// production and by deterministic stubs in tests.
type Checker interface {
	Plausible(word string, c Category) bool
}

// Validate scores one round. Both answer sets must carry the full category
// enumeration and the letter must be a single alphabetic character; any
// shape problem fails fast with no partial verdict.
func Validate(letter Letter, human, opponent AnswerSet, check Checker) (*Verdict, error) {
	l, err := ParseLetter(string(letter))
	if err != nil {
		return nil, err
	}
	if !human.Complete() {
		return nil, fmt.Errorf("human side: %w", ErrIncompleteAnswers)
	}
	if !opponent.Complete() {
		return nil, fmt.Errorf("opponent side: %w", ErrIncompleteAnswers)
	}

	v := &Verdict{
		Letter:  l,
		Results: make([]CategoryResult, 0, len(categories)),
	}
	for _, c := range categories {
		r := scoreCategory(l, c, human[c], opponent[c], check)
		v.PlayerTotal += r.HumanPoints
		v.OpponentTotal += r.OpponentPoints
		v.Results = append(v.Results, r)
	}
	return v, nil
}

// scoreCategory judges both answers for one category and applies the
// cross-answer award. Validity is decided before the duplicate comparison:
// two equal invalid strings never reach the duplicate branch.
func scoreCategory(l Letter, c Category, human, opponent string, check Checker) CategoryResult {
	r := CategoryResult{
		Category:       c,
		HumanAnswer:    human,
		OpponentAnswer: opponent,
	}
	hn := normalize(human)
	on := normalize(opponent)
	r.HumanValid = answerValid(l, c, hn, check)
	r.OpponentValid = answerValid(l, c, on, check)

	switch {
	case r.HumanValid && r.OpponentValid && hn == on:
		r.HumanPoints, r.OpponentPoints = PointsDuplicate, PointsDuplicate
	case r.HumanValid && r.OpponentValid:
		r.HumanPoints, r.OpponentPoints = PointsUnique, PointsUnique
	case r.HumanValid:
		r.HumanPoints = PointsUnique
	case r.OpponentValid:
		r.OpponentPoints = PointsUnique
	}
	return r
}

// normalize prepares an answer for comparison: surrounding whitespace
// trimmed, case folded. The original text survives in the verdict.
func normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// answerValid applies the per-answer checks to an already-normalized word:
// non-empty, first letter matches the round's letter, and the plausibility
// capability accepts it for the category. A nil checker skips the
// plausibility step.
func answerValid(l Letter, c Category, norm string, check Checker) bool {
	if norm == "" {
		return false
	}
	first := []rune(norm)[0]
	if first != toLowerRune(l.Rune()) {
		return false
	}
	if check != nil && !check.Plausible(norm, c) {
		return false
	}
	return true
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
