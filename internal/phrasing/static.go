package phrasing

import "context"

// Static is a generator that always answers with the fallback text. It is
// used when no API key is configured and in tests; the conversation is fully
// functional in this mode.
type Static struct{}

// Generate returns the fallback verbatim.
func (Static) Generate(_ context.Context, _ string, _ int, fallback string) string {
	return fallback
}
