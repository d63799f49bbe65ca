package conversation

import (
	"strings"

	"github.com/omchoksi/talentscout/internal/classify"
)

// Assessment is the structured analysis stored alongside a candidate profile.
type Assessment struct {
	ExperienceNumeric float64       `json:"experience_numeric"`
	CompetencyLevel   classify.Tier `json:"competency_level"`
	TechnicalSkills   []string      `json:"technical_skills"`
	PositionCategory  string        `json:"position_category"`
	QuestionAsked     string        `json:"question_asked"`
	ResponseQuality   string        `json:"response_quality"`
}

// Profile is the write-once candidate summary derived when the technical
// answer arrives. It is never updated afterwards.
type Profile struct {
	SessionID       string        `json:"session_id"`
	Name            string        `json:"name"`
	ExperienceYears float64       `json:"experience_years"`
	ExperienceRaw   string        `json:"experience_raw"`
	Position        string        `json:"position"`
	TechStack       []string      `json:"tech_stack"`
	SkillsExtracted []string      `json:"skills_extracted"`
	CompetencyLevel classify.Tier `json:"competency_level"`
	TechnicalAnswer string        `json:"technical_answer"`
	Assessment      Assessment    `json:"ai_assessment"`
}

// BuildProfile derives the candidate profile from completed collection
// progress.
func BuildProfile(sessionID string, f Fields) Profile {
	years := classify.ExperienceYears(f.Experience)

	return Profile{
		SessionID:       sessionID,
		Name:            f.Name,
		ExperienceYears: years,
		ExperienceRaw:   f.Experience,
		Position:        f.Position,
		TechStack:       splitTechStack(f.TechStack),
		SkillsExtracted: f.ExtractedSkills,
		CompetencyLevel: f.CompetencyLevel,
		TechnicalAnswer: f.TechnicalAnswer,
		Assessment: Assessment{
			ExperienceNumeric: years,
			CompetencyLevel:   f.CompetencyLevel,
			TechnicalSkills:   f.ExtractedSkills,
			PositionCategory:  string(classify.CategorizePosition(f.Position)),
			QuestionAsked:     f.IntelligentQuestion,
			ResponseQuality:   "pending_review",
		},
	}
}

func splitTechStack(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	stack := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			stack = append(stack, p)
		}
	}
	return stack
}
