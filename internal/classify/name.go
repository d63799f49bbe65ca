// Package classify provides the pure text classifiers used by the interview
// state machine: name extraction and validation, experience detection,
// position categorization, and skill extraction. All functions are stateless
// and operate on a single utterance.
package classify

import (
	"strings"
	"unicode"
)

// NameValidity is the tri-state result of name validation. Ambiguity is a
// first-class outcome, not an error: it routes the conversation into the
// name-confirmation sub-flow.
type NameValidity int

const (
	// NameInvalid means the utterance is a greeting, a confirmation word, or
	// otherwise cannot be a name.
	NameInvalid NameValidity = iota
	// NameValid means the utterance can be accepted as a name outright.
	NameValid
	// NameAmbiguous means a short single-word candidate that needs a yes/no
	// confirmation before being accepted.
	NameAmbiguous
)

func (v NameValidity) String() string {
	switch v {
	case NameValid:
		return "valid"
	case NameAmbiguous:
		return "ambiguous"
	default:
		return "invalid"
	}
}

// leadInPhrases are matched case-insensitively against the start of the
// utterance; the first matching prefix wins.
var leadInPhrases = []string{
	"my name is ", "my name's ", "my name: ", "my name - ",
	"i am ", "i'm ", "im ", "i m ",
	"this is ", "it's ", "its ",
	"call me ", "you can call me ",
	"name is ", "name: ", "name - ",
	"i'm called ", "im called ",
}

// trailingNamePhrases handle "Om Choksi is my name" style utterances when no
// lead-in prefix matched.
var trailingNamePhrases = []string{"is my name", "my name"}

var greetingWords = map[string]struct{}{
	"hi": {}, "hii": {}, "hiii": {}, "hiiii": {},
	"hello": {}, "helo": {}, "hey": {},
	"yo": {}, "sup": {}, "wassup": {},
}

var confirmationWords = map[string]struct{}{
	"yes": {}, "yess": {}, "yesss": {}, "yeah": {},
	"yep": {}, "yepp": {}, "no": {}, "nope": {}, "nah": {},
}

// ExtractName strips a known lead-in phrase ("my name is", "i am", "call me",
// ...) from the front of the utterance and returns the remainder trimmed. The
// match is case-insensitive but the remainder keeps its original case. When no
// prefix matches, a trailing "is my name" / "my name" at a non-zero offset
// truncates the utterance to everything before it. Unmatched input is returned
// trimmed but otherwise unchanged.
func ExtractName(text string) string {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	for _, phrase := range leadInPhrases {
		if strings.HasPrefix(lower, phrase) {
			return strings.TrimSpace(text[len(phrase):])
		}
	}

	for _, phrase := range trailingNamePhrases {
		if idx := strings.Index(lower, phrase); idx > 0 {
			return strings.TrimSpace(text[:idx])
		}
	}

	return text
}

// ValidateName reports whether the utterance looks like a real name. It runs
// ExtractName first, rejects greetings and bare confirmation words, accepts
// two or more words outright, and accepts long alphabetic single words.
// Single words of 3 to 5 runes are ambiguous and need confirmation; anything
// shorter, or a single non-alphabetic token outside that range, is invalid.
func ValidateName(text string) NameValidity {
	name := ExtractName(text)
	lower := strings.ToLower(name)

	if _, ok := greetingWords[lower]; ok {
		return NameInvalid
	}
	if _, ok := confirmationWords[lower]; ok {
		return NameInvalid
	}

	words := strings.Fields(name)
	if len(words) >= 2 {
		return NameValid
	}
	if len(words) == 1 {
		n := len([]rune(name))
		if n >= 6 && isAlpha(name) {
			return NameValid
		}
		if n >= 3 && n <= 5 {
			return NameAmbiguous
		}
	}

	return NameInvalid
}

// confirmationKeywords drive the fuzzy yes-detection in the name-confirmation
// sub-flow. Distinct from confirmationWords above: these are the affirmative
// stems a typo-tolerant prefix match runs against.
var confirmationKeywords = []string{"yes", "yeah", "yep", "correct", "right", "sure", "ok", "okay"}

// IsConfirmation reports whether the utterance is an affirmative reply. A
// keyword matches exactly, or as a prefix with at most two trailing extra
// characters, which tolerates typos like "yesss" or "okayy". This is a
// heuristic, not an edit-distance check.
func IsConfirmation(text string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	for _, kw := range confirmationKeywords {
		if cleaned == kw {
			return true
		}
		if strings.HasPrefix(cleaned, kw) && len(cleaned)-len(kw) <= 2 {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
