package question

import (
	"math/rand"
	"time"

	"github.com/omchoksi/talentscout/internal/classify"
)

// Selector picks one interview question for a candidate. The random source is
// injectable so tests can be deterministic.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a Selector seeded from the current time.
func NewSelector() *Selector {
	return NewSelectorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSelectorWithSource returns a Selector using the given random source.
func NewSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// Pick resolves the free-text position and numeric experience to a bank cell
// and returns one of its questions uniformly at random.
func (s *Selector) Pick(position string, years float64) string {
	category := classify.CategorizePosition(position)
	tier := classify.CompetencyTier(years)

	questions := Candidates(category, tier)
	return questions[s.rng.Intn(len(questions))]
}
