package question

import (
	"math/rand"
	"testing"

	"github.com/omchoksi/talentscout/internal/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Selection is randomized, so tests assert membership in the expected cell
// rather than exact output.

func TestPick_MembershipInResolvedCell(t *testing.T) {
	s := NewSelectorWithSource(rand.NewSource(1))

	expected := Candidates(classify.CategorySoftware, classify.TierMid)
	for i := 0; i < 20; i++ {
		q := s.Pick("Backend Engineer", 3)
		assert.Contains(t, expected, q)
	}
}

func TestPick_AIMLBeforeDevKeywords(t *testing.T) {
	s := NewSelectorWithSource(rand.NewSource(1))

	expected := Candidates(classify.CategoryAIML, classify.TierSenior)
	q := s.Pick("Senior ML Engineer", 8)
	assert.Contains(t, expected, q)
}

func TestPick_DeterministicWithFixedSource(t *testing.T) {
	a := NewSelectorWithSource(rand.NewSource(42))
	b := NewSelectorWithSource(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Pick("Data Analyst", 1), b.Pick("Data Analyst", 1))
	}
}

func TestPick_CoversWholeCell(t *testing.T) {
	s := NewSelectorWithSource(rand.NewSource(7))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[s.Pick("Product Manager", 0)] = true
	}

	junior := Candidates(classify.CategoryDefault, classify.TierJunior)
	require.Len(t, seen, len(junior))
}

func TestCandidates_Fallbacks(t *testing.T) {
	// Unknown category falls back to Default.
	got := Candidates(classify.Category("Gardening"), classify.TierMid)
	assert.Equal(t, Candidates(classify.CategoryDefault, classify.TierMid), got)

	// Unknown tier falls back to Default junior.
	got = Candidates(classify.CategoryAIML, classify.Tier("staff"))
	assert.Equal(t, Candidates(classify.CategoryDefault, classify.TierJunior), got)
}

func TestBank_CellSizes(t *testing.T) {
	// Data Science cells carry four questions, the rest three.
	for _, tier := range []classify.Tier{classify.TierJunior, classify.TierMid, classify.TierSenior} {
		assert.Len(t, Candidates(classify.CategoryData, tier), 4)
		assert.Len(t, Candidates(classify.CategoryAIML, tier), 3)
		assert.Len(t, Candidates(classify.CategorySoftware, tier), 3)
		assert.Len(t, Candidates(classify.CategoryDefault, tier), 3)
	}
}
