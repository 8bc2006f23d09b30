package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowAll accepts every word; rejecting accepts everything except the
// listed normalized words. Deterministic stand-ins for the vocabulary.
type allowAll struct{}

func (allowAll) Plausible(string, Category) bool { return true }

type rejecting map[string]bool

func (r rejecting) Plausible(word string, _ Category) bool { return !r[word] }

func answersFor(m map[Category]string) AnswerSet {
	as := EmptyAnswerSet()
	for c, w := range m {
		as[c] = w
	}
	return as
}

func TestValidateEmptyBothSides(t *testing.T) {
	v, err := Validate("A", EmptyAnswerSet(), EmptyAnswerSet(), allowAll{})
	require.NoError(t, err)
	assert.Equal(t, 0, v.PlayerTotal)
	assert.Equal(t, 0, v.OpponentTotal)
	require.Len(t, v.Results, NumCategories())
	for _, r := range v.Results {
		assert.False(t, r.HumanValid)
		assert.False(t, r.OpponentValid)
		assert.Zero(t, r.HumanPoints)
		assert.Zero(t, r.OpponentPoints)
	}
}

func TestValidateDuplicateAnswer(t *testing.T) {
	human := answersFor(map[Category]string{CategoryAnimal: "Ant"})
	opp := answersFor(map[Category]string{CategoryAnimal: "ant"})

	v, err := Validate("A", human, opp, allowAll{})
	require.NoError(t, err)

	r := resultFor(t, v, CategoryAnimal)
	assert.True(t, r.HumanValid)
	assert.True(t, r.OpponentValid)
	assert.Equal(t, PointsDuplicate, r.HumanPoints)
	assert.Equal(t, PointsDuplicate, r.OpponentPoints)
	assert.Equal(t, "Ant", r.HumanAnswer, "original casing preserved for display")
}

func TestValidateOneSidedAnswer(t *testing.T) {
	human := answersFor(map[Category]string{CategoryColor: "Blue"})
	opp := answersFor(map[Category]string{CategoryColor: ""})

	v, err := Validate("B", human, opp, allowAll{})
	require.NoError(t, err)

	r := resultFor(t, v, CategoryColor)
	assert.True(t, r.HumanValid)
	assert.False(t, r.OpponentValid)
	assert.Equal(t, PointsUnique, r.HumanPoints)
	assert.Zero(t, r.OpponentPoints)
}

func TestValidateWrongFirstLetter(t *testing.T) {
	human := answersFor(map[Category]string{CategoryFruit: "Dragonfruit"})

	v, err := Validate("C", human, EmptyAnswerSet(), allowAll{})
	require.NoError(t, err)

	r := resultFor(t, v, CategoryFruit)
	assert.False(t, r.HumanValid)
	assert.Zero(t, r.HumanPoints)
}

func TestValidateDistinctValidAnswers(t *testing.T) {
	human := answersFor(map[Category]string{CategoryAnimal: "Bear"})
	opp := answersFor(map[Category]string{CategoryAnimal: "Buffalo"})

	v, err := Validate("B", human, opp, allowAll{})
	require.NoError(t, err)

	r := resultFor(t, v, CategoryAnimal)
	assert.Equal(t, PointsUnique, r.HumanPoints)
	assert.Equal(t, PointsUnique, r.OpponentPoints)
}

func TestValidateEqualButInvalidNeverDuplicate(t *testing.T) {
	// Both sides give the same word, but the checker rejects it: validity
	// is decided first, so the duplicate branch is never reached.
	human := answersFor(map[Category]string{CategoryBrand: "Bzzzz"})
	opp := answersFor(map[Category]string{CategoryBrand: "bzzzz"})

	v, err := Validate("B", human, opp, rejecting{"bzzzz": true})
	require.NoError(t, err)

	r := resultFor(t, v, CategoryBrand)
	assert.False(t, r.HumanValid)
	assert.False(t, r.OpponentValid)
	assert.Zero(t, r.HumanPoints)
	assert.Zero(t, r.OpponentPoints)
}

func TestValidateWhitespaceTrimmed(t *testing.T) {
	human := answersFor(map[Category]string{CategoryName: "  Alice  "})

	v, err := Validate("a", human, EmptyAnswerSet(), allowAll{})
	require.NoError(t, err)

	r := resultFor(t, v, CategoryName)
	assert.True(t, r.HumanValid)
	assert.Equal(t, "  Alice  ", r.HumanAnswer)
}

func TestValidateTotalsBounded(t *testing.T) {
	human := EmptyAnswerSet()
	opp := EmptyAnswerSet()
	for _, c := range Categories() {
		human[c] = "apple"
		opp[c] = "avocado"
	}
	v, err := Validate("A", human, opp, allowAll{})
	require.NoError(t, err)
	assert.Equal(t, PointsUnique*NumCategories(), v.PlayerTotal)
	assert.Equal(t, PointsUnique*NumCategories(), v.OpponentTotal)
}

func TestValidateIsPure(t *testing.T) {
	human := answersFor(map[Category]string{CategoryVerb: "bake", CategoryColor: "blue"})
	opp := answersFor(map[Category]string{CategoryVerb: "bring"})

	v1, err := Validate("B", human, opp, allowAll{})
	require.NoError(t, err)
	v2, err := Validate("B", human, opp, allowAll{})
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	ok := EmptyAnswerSet()

	_, err := Validate("AB", ok, ok, allowAll{})
	assert.Error(t, err, "multi-character letter")

	_, err = Validate("1", ok, ok, allowAll{})
	assert.Error(t, err, "non-alphabetic letter")

	short := AnswerSet{CategoryName: "x"}
	_, err = Validate("A", short, ok, allowAll{})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)

	extra := EmptyAnswerSet()
	extra[Category("planet")] = "mars"
	_, err = Validate("A", ok, extra, allowAll{})
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
}

func TestValidateNilCheckerSkipsPlausibility(t *testing.T) {
	human := answersFor(map[Category]string{CategoryObject: "axolotl"})
	v, err := Validate("A", human, EmptyAnswerSet(), nil)
	require.NoError(t, err)
	assert.True(t, resultFor(t, v, CategoryObject).HumanValid)
}

func TestVerdictCategoryOrder(t *testing.T) {
	v, err := Validate("A", EmptyAnswerSet(), EmptyAnswerSet(), allowAll{})
	require.NoError(t, err)
	require.True(t, v.Complete())
	for i, c := range Categories() {
		assert.Equal(t, c, v.Results[i].Category)
	}
}

func resultFor(t *testing.T, v *Verdict, c Category) CategoryResult {
	t.Helper()
	for _, r := range v.Results {
		if r.Category == c {
			return r
		}
	}
	t.Fatalf("verdict has no result for category %q", c)
	return CategoryResult{}
}
