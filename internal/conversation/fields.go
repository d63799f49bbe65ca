// Package conversation implements the interview state machine: the
// field-collection progress for a session, the pure state-transition function,
// the derived candidate profile, and the runner that wires them to the session
// store and the phrasing generator.
package conversation

import "github.com/omchoksi/talentscout/internal/classify"

// Fields is the per-session collection progress. Which fields are set is the
// only conversation state there is: the current phase is computed from this
// struct at the top of every turn, never stored separately. The JSON shape
// round-trips through the session store unchanged.
type Fields struct {
	Name string `json:"name,omitempty"`
	// TempName holds an ambiguous single-word name awaiting a yes/no
	// confirmation. It is only ever set while Name is still empty and is
	// cleared the moment a name is accepted.
	TempName            string        `json:"temp_name,omitempty"`
	Experience          string        `json:"experience,omitempty"`
	Position            string        `json:"position,omitempty"`
	TechStack           string        `json:"tech_stack,omitempty"`
	ExtractedSkills     []string      `json:"extracted_skills,omitempty"`
	CompetencyLevel     classify.Tier `json:"competency_level,omitempty"`
	IntelligentQuestion string        `json:"intelligent_question,omitempty"`
	QuestionsAsked      bool          `json:"questions_asked,omitempty"`
	TechnicalAnswer     string        `json:"technical_answer,omitempty"`
}

// State is the conversation phase, derived from Fields.
type State int

const (
	StateAwaitingName State = iota
	StateAwaitingNameConfirmation
	StateAwaitingExperience
	StateAwaitingPosition
	StateAwaitingTechStack
	StateAwaitingTechnicalAnswer
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingNameConfirmation:
		return "awaiting_name_confirmation"
	case StateAwaitingExperience:
		return "awaiting_experience"
	case StateAwaitingPosition:
		return "awaiting_position"
	case StateAwaitingTechStack:
		return "awaiting_tech_stack"
	case StateAwaitingTechnicalAnswer:
		return "awaiting_technical_answer"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// CurrentState derives the conversation phase from the collection progress.
// Checks run in fixed priority order; the first unmet condition wins.
func CurrentState(f Fields) State {
	switch {
	case f.Name == "" && f.TempName != "":
		return StateAwaitingNameConfirmation
	case f.Name == "":
		return StateAwaitingName
	case f.Experience == "":
		return StateAwaitingExperience
	case f.Position == "":
		return StateAwaitingPosition
	case f.TechStack == "":
		return StateAwaitingTechStack
	case !f.QuestionsAsked:
		return StateAwaitingTechnicalAnswer
	default:
		return StateComplete
	}
}
