package classify

import (
	"regexp"
	"strconv"
	"strings"
)

const maxExperienceLen = 50

// experienceKeywords make keyword-only answers like "fresher" acceptable even
// without a digit.
var experienceKeywords = []string{
	"year", "yr", "month", "experience", "fresher", "fresh", "beginner", "entry",
}

// yearPatterns are tried in order; the first capture wins.
var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`^(\d+\.?\d*)$`),
	regexp.MustCompile(`(\d+\.?\d*)\s*(?:year|yr)\s*(?:of\s*)?(?:experience)?`),
}

// seniorityYears maps seniority words to an assumed year count, scanned in
// order with the first substring hit winning.
var seniorityYears = []struct {
	keyword string
	years   float64
}{
	{"fresher", 0},
	{"fresh", 0},
	{"beginner", 0},
	{"entry", 0},
	{"junior", 1},
	{"recent", 0.5},
	{"experienced", 5},
	{"senior", 7},
	{"lead", 8},
	{"principal", 10},
}

// ValidExperience reports whether the utterance plausibly states professional
// experience: non-empty, at most 50 characters, and containing either a digit
// or one of the experience keywords.
func ValidExperience(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))

	if text == "" || len([]rune(text)) > maxExperienceLen {
		return false
	}

	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}

	for _, kw := range experienceKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	return false
}

// ExperienceYears extracts a numeric year count from free-text experience.
// Numeric patterns ("2.5 years", a bare number, "3 yr of experience") are
// tried first; failing those, seniority words map to assumed values
// ("fresher" is 0, "lead" is 8). Unrecognized input yields 0.
func ExperienceYears(text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, pattern := range yearPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if years, err := strconv.ParseFloat(m[1], 64); err == nil {
				return years
			}
		}
	}

	for _, entry := range seniorityYears {
		if strings.Contains(text, entry.keyword) {
			return entry.years
		}
	}

	return 0
}

// Tier is a candidate competency tier derived from numeric experience.
type Tier string

const (
	TierJunior Tier = "junior"
	TierMid    Tier = "mid"
	TierSenior Tier = "senior"
)

// CompetencyTier buckets numeric experience: up to 2 years is junior, up to 5
// is mid, anything beyond is senior. Boundaries are inclusive on the lower
// tier.
func CompetencyTier(years float64) Tier {
	switch {
	case years <= 2:
		return TierJunior
	case years <= 5:
		return TierMid
	default:
		return TierSenior
	}
}
