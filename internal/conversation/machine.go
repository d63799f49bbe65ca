package conversation

import (
	"fmt"
	"strings"

	"github.com/omchoksi/talentscout/internal/classify"
)

const (
	defaultMaxTokens  = 100
	questionMaxTokens = 150
)

// greeting is the fixed first reply of every session; no classification or
// phrasing happens on the opening turn.
const greeting = "Hello! 👋 I'm TalentScout, your AI hiring assistant. To get started, could you please tell me your full name?"

// dontKnowPhrases mark a technical answer as an honest "I don't know".
var dontKnowPhrases = []string{
	"i don't know", "don't know", "not sure", "no idea", "i'm not sure",
	"can you tell me", "what is", "i dont know", "dont know", "idk",
}

// Prompt is an instruction for the phrasing generator together with the
// literal text used when generation is unavailable or fails. An empty
// Instruction means the reply is the Fallback verbatim, with no generation
// attempted.
type Prompt struct {
	Instruction string
	MaxTokens   int
	Fallback    string
}

// Literal returns a Prompt that skips generation entirely.
func Literal(text string) Prompt {
	return Prompt{Fallback: text}
}

// Turn is the outcome of one state transition: the updated collection
// progress, the reply to render, and whether the derived candidate profile
// became due on this turn.
type Turn struct {
	Fields       Fields
	Prompt       Prompt
	ProfileReady bool
}

// QuestionPicker selects one technical question for a position and experience
// level. Satisfied by question.Selector; injectable for deterministic tests.
type QuestionPicker interface {
	Pick(position string, years float64) string
}

// Machine is the conversation state machine. Advance is a pure function of
// the collection progress, the utterance, and the transcript length; the only
// injected dependency is the question picker.
type Machine struct {
	questions QuestionPicker
}

// NewMachine returns a Machine using the given question picker.
func NewMachine(questions QuestionPicker) *Machine {
	return &Machine{questions: questions}
}

// Advance runs one turn. The utterance is trimmed before classification;
// messageCount is the number of transcript entries stored so far, used only
// to detect the very first utterance of a session.
func (m *Machine) Advance(f Fields, utterance string, messageCount int) Turn {
	input := strings.TrimSpace(utterance)

	switch CurrentState(f) {
	case StateAwaitingName:
		return m.advanceName(f, input, messageCount)
	case StateAwaitingNameConfirmation:
		return m.advanceNameConfirmation(f, input)
	case StateAwaitingExperience:
		return m.advanceExperience(f, input)
	case StateAwaitingPosition:
		return m.advancePosition(f, input)
	case StateAwaitingTechStack:
		return m.advanceTechStack(f, input)
	case StateAwaitingTechnicalAnswer:
		return m.advanceTechnicalAnswer(f, input)
	default:
		return m.advanceComplete(f)
	}
}

func (m *Machine) advanceName(f Fields, input string, messageCount int) Turn {
	if messageCount == 0 {
		return Turn{Fields: f, Prompt: Literal(greeting)}
	}

	switch classify.ValidateName(input) {
	case classify.NameInvalid:
		return Turn{Fields: f, Prompt: Prompt{
			Instruction: fmt.Sprintf("User said '%s' when asked for their name, but that's not a valid name (it's a greeting or invalid). Politely tell them you need their actual full name to proceed.", input),
			MaxTokens:   defaultMaxTokens,
			Fallback:    "Hi! I need your actual name to continue. Could you please tell me your full name?",
		}}
	case classify.NameAmbiguous:
		f.TempName = classify.ExtractName(input)
		return Turn{Fields: f, Prompt: Literal(fmt.Sprintf("Is '%s' your full name? If yes, please type 'yes'. Otherwise, please provide your full name (first and last name).", f.TempName))}
	default:
		f.Name = classify.ExtractName(input)
		return Turn{Fields: f, Prompt: Prompt{
			Instruction: fmt.Sprintf("User's name is %s. Greet them warmly and ask how many years of professional experience they have.", f.Name),
			MaxTokens:   defaultMaxTokens,
			Fallback:    fmt.Sprintf("Nice to meet you, %s! 😊 How many years of professional experience do you have?", f.Name),
		}}
	}
}

func (m *Machine) advanceNameConfirmation(f Fields, input string) Turn {
	if classify.IsConfirmation(input) {
		f.Name = f.TempName
		f.TempName = ""
		return Turn{Fields: f, Prompt: Prompt{
			Instruction: fmt.Sprintf("User confirmed their name is %s. Greet them and ask about their professional experience.", f.Name),
			MaxTokens:   defaultMaxTokens,
			Fallback:    fmt.Sprintf("Great! Nice to meet you, %s! 😊 How many years of professional experience do you have?", f.Name),
		}}
	}

	// Not a confirmation: maybe they typed a different (full) name instead.
	// An ambiguous re-check is accepted outright rather than looping through
	// another confirmation round.
	extracted := classify.ExtractName(input)
	if v := classify.ValidateName(input); v == classify.NameValid || v == classify.NameAmbiguous {
		f.Name = extracted
		f.TempName = ""
		return Turn{Fields: f, Prompt: Prompt{
			Instruction: fmt.Sprintf("User's name is %s. Greet them warmly and ask about their years of experience.", f.Name),
			MaxTokens:   defaultMaxTokens,
			Fallback:    fmt.Sprintf("Perfect! Nice to meet you, %s! 😊 How many years of professional experience do you have?", f.Name),
		}}
	}

	return Turn{Fields: f, Prompt: Literal(fmt.Sprintf("Please type 'yes' to confirm '%s' is your name, or provide your full name (first and last name).", f.TempName))}
}

func (m *Machine) advanceExperience(f Fields, input string) Turn {
	if !classify.ValidExperience(input) {
		return Turn{Fields: f, Prompt: Prompt{
			Instruction: fmt.Sprintf("User said '%s' when asked for experience, which isn't clear. Ask for their years of experience with examples like '3 years', '5 years', or 'fresher'.", input),
			MaxTokens:   defaultMaxTokens,
			Fallback:    "I need to know your years of experience. For example: '3 years', '5 years', or 'fresher' if you're just starting. How many years of professional experience do you have?",
		}}
	}

	f.Experience = input
	return Turn{Fields: f, Prompt: Prompt{
		Instruction: fmt.Sprintf("User has %s of experience. Acknowledge this and ask what position/role they're interested in.", input),
		MaxTokens:   defaultMaxTokens,
		Fallback:    fmt.Sprintf("Got it, %s of experience! What position or role are you interested in?", input),
	}}
}

func (m *Machine) advancePosition(f Fields, input string) Turn {
	// The position is accepted verbatim; there is nothing to validate.
	f.Position = input
	return Turn{Fields: f, Prompt: Prompt{
		Instruction: fmt.Sprintf("User is interested in the %s position/role. Acknowledge this enthusiastically and ask what technologies or programming languages they're proficient in.", input),
		MaxTokens:   defaultMaxTokens,
		Fallback:    fmt.Sprintf("Excellent! %s is a great choice! 🚀 What technologies or programming languages are you proficient in?", input),
	}}
}

func (m *Machine) advanceTechStack(f Fields, input string) Turn {
	f.TechStack = input

	years := classify.ExperienceYears(f.Experience)
	f.ExtractedSkills = classify.ExtractSkills(input)
	f.CompetencyLevel = classify.CompetencyTier(years)
	f.IntelligentQuestion = m.questions.Pick(f.Position, years)

	return Turn{Fields: f, Prompt: Prompt{
		Instruction: fmt.Sprintf("User provided tech stack: %s. You are a hiring assistant interviewing a candidate. ASK them this question (do not provide any answers or explanations): %s", input, f.IntelligentQuestion),
		MaxTokens:   questionMaxTokens,
		Fallback:    fmt.Sprintf("Great tech stack! 💻 Here's a question for you: %s", f.IntelligentQuestion),
	}}
}

func (m *Machine) advanceTechnicalAnswer(f Fields, input string) Turn {
	f.QuestionsAsked = true
	f.TechnicalAnswer = input

	if isDontKnow(input) {
		return Turn{Fields: f, ProfileReady: true, Prompt: Prompt{
			Instruction: fmt.Sprintf("Candidate said '%s' when asked a technical question. Be encouraging and supportive. Thank them for their honesty, mention that learning is a continuous process, and tell them the recruitment team will be in touch.", input),
			MaxTokens:   defaultMaxTokens,
			Fallback:    "Thank you for your honesty! 😊 Learning is a continuous journey, and your willingness to admit when you don't know something shows great character. Our recruitment team will be in touch to discuss next steps and potential learning opportunities.",
		}}
	}

	return Turn{Fields: f, ProfileReady: true, Prompt: Prompt{
		Instruction: fmt.Sprintf("User answered the technical question with: '%s'. Thank them warmly, compliment their knowledge, and tell them the recruitment team will be in touch soon.", input),
		MaxTokens:   defaultMaxTokens,
		Fallback:    "Thank you for sharing that! Your technical knowledge is impressive. 🌟 Our recruitment team will review your details and get in touch with you soon. Have a great day!",
	}}
}

func (m *Machine) advanceComplete(f Fields) Turn {
	// Repeated calls after completion keep returning a closing message and
	// mutate nothing.
	return Turn{Fields: f, Prompt: Prompt{
		Instruction: "The interview is complete. Thank the user again and let them know we'll be in touch. Be warm and professional.",
		MaxTokens:   defaultMaxTokens,
		Fallback:    "Thanks for your time today! We'll be in touch soon. Have a wonderful day! 😊",
	}}
}

func isDontKnow(input string) bool {
	lower := strings.ToLower(strings.TrimSpace(input))
	for _, phrase := range dontKnowPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
