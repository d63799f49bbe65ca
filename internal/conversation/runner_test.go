package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/omchoksi/talentscout/internal/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory SessionStore for tests.
type memStore struct {
	fields   map[string]Fields
	messages map[string][]string
	failLoad bool
}

func newMemStore() *memStore {
	return &memStore{fields: map[string]Fields{}, messages: map[string][]string{}}
}

func (s *memStore) LoadFields(_ context.Context, id string) (Fields, error) {
	if s.failLoad {
		return Fields{}, errors.New("store down")
	}
	return s.fields[id], nil
}

func (s *memStore) SaveFields(_ context.Context, id string, f Fields) error {
	s.fields[id] = f
	return nil
}

func (s *memStore) AppendMessage(_ context.Context, id, role, content string) error {
	s.messages[id] = append(s.messages[id], fmt.Sprintf("%s: %s", role, content))
	return nil
}

func (s *memStore) CountMessages(_ context.Context, id string) (int, error) {
	return len(s.messages[id]), nil
}

// memProfiles records saved profiles; can be told to fail.
type memProfiles struct {
	saved []Profile
	fail  bool
}

func (p *memProfiles) SaveProfile(_ context.Context, profile Profile) error {
	if p.fail {
		return errors.New("profile sink down")
	}
	p.saved = append(p.saved, profile)
	return nil
}

// failingPhraser simulates the generator being down on every single call: it
// must leave the conversation fully functional on fallbacks alone.
type failingPhraser struct{}

func (failingPhraser) Generate(_ context.Context, _ string, _ int, fallback string) string {
	return fallback
}

// echoPhraser proves generated text is used when generation succeeds.
type echoPhraser struct{}

func (echoPhraser) Generate(_ context.Context, instruction string, _ int, _ string) string {
	return "generated: " + instruction
}

func newTestRunner(store SessionStore, profiles ProfileSink, phraser PhrasingGenerator) *Runner {
	return NewRunner(newTestMachine(), store, profiles, phraser, zap.NewNop())
}

func TestChat_GeneratesSessionIDWhenAbsent(t *testing.T) {
	r := newTestRunner(newMemStore(), &memProfiles{}, failingPhraser{})

	res, err := r.Chat(context.Background(), "", "hi")
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
}

func TestChat_FullInterviewOnFallbacksOnly(t *testing.T) {
	store := newMemStore()
	profiles := &memProfiles{}
	r := newTestRunner(store, profiles, failingPhraser{})
	ctx := context.Background()

	// First call always greets, whatever the input; no field is set.
	res, err := r.Chat(ctx, "s1", "Om Choksi")
	require.NoError(t, err)
	assert.Contains(t, res.Response, "TalentScout")
	assert.Equal(t, Fields{}, res.Fields)

	res, err = r.Chat(ctx, "s1", "Om Choksi")
	require.NoError(t, err)
	assert.Equal(t, "Om Choksi", res.Fields.Name)

	res, err = r.Chat(ctx, "s1", "3 years")
	require.NoError(t, err)
	assert.Equal(t, "3 years", res.Fields.Experience)

	res, err = r.Chat(ctx, "s1", "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", res.Fields.Position)

	res, err = r.Chat(ctx, "s1", "Python, SQL")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "sql"}, res.Fields.ExtractedSkills)
	assert.Equal(t, classify.TierMid, res.Fields.CompetencyLevel)
	assert.Contains(t, res.Response, res.Fields.IntelligentQuestion)
	assert.Empty(t, profiles.saved)

	res, err = r.Chat(ctx, "s1", "I don't know")
	require.NoError(t, err)
	assert.True(t, res.Fields.QuestionsAsked)
	assert.Contains(t, res.Response, "honesty")

	require.Len(t, profiles.saved, 1)
	p := profiles.saved[0]
	assert.Equal(t, "s1", p.SessionID)
	assert.Equal(t, "Om Choksi", p.Name)
	assert.Equal(t, 3.0, p.ExperienceYears)
	assert.Equal(t, classify.TierMid, p.CompetencyLevel)
	assert.Equal(t, []string{"python", "sql"}, p.SkillsExtracted)
	assert.Equal(t, []string{"Python", "SQL"}, p.TechStack)
	assert.Equal(t, "Software Development", p.Assessment.PositionCategory)
	assert.Equal(t, "pending_review", p.Assessment.ResponseQuality)

	// Two transcript rows per turn, in order.
	assert.Len(t, store.messages["s1"], 12)
}

func TestChat_CompletionIsIdempotent(t *testing.T) {
	store := newMemStore()
	profiles := &memProfiles{}
	r := newTestRunner(store, profiles, failingPhraser{})
	ctx := context.Background()

	for _, input := range []string{"x", "Om Choksi", "3 years", "Backend Engineer", "Python", "42"} {
		_, err := r.Chat(ctx, "s1", input)
		require.NoError(t, err)
	}
	require.Len(t, profiles.saved, 1)
	final := store.fields["s1"]

	for i := 0; i < 3; i++ {
		res, err := r.Chat(ctx, "s1", "hello again")
		require.NoError(t, err)
		assert.Equal(t, final, res.Fields)
		assert.Contains(t, res.Response, "in touch")
	}

	// No duplicate profile on repeated closing turns.
	assert.Len(t, profiles.saved, 1)
}

func TestChat_UsesGeneratedTextWhenAvailable(t *testing.T) {
	r := newTestRunner(newMemStore(), &memProfiles{}, echoPhraser{})
	ctx := context.Background()

	// Greeting is literal even with a working generator.
	res, err := r.Chat(ctx, "s1", "hi")
	require.NoError(t, err)
	assert.Contains(t, res.Response, "TalentScout")

	res, err = r.Chat(ctx, "s1", "Om Choksi")
	require.NoError(t, err)
	assert.Contains(t, res.Response, "generated: ")
}

func TestChat_ProfileFailureDoesNotFailTurn(t *testing.T) {
	store := newMemStore()
	profiles := &memProfiles{fail: true}
	r := newTestRunner(store, profiles, failingPhraser{})
	ctx := context.Background()

	for _, input := range []string{"x", "Om Choksi", "3 years", "Backend Engineer", "Python"} {
		_, err := r.Chat(ctx, "s1", input)
		require.NoError(t, err)
	}

	res, err := r.Chat(ctx, "s1", "no idea")
	require.NoError(t, err)
	assert.True(t, res.Fields.QuestionsAsked)
}

func TestChat_StoreFailurePropagates(t *testing.T) {
	store := newMemStore()
	store.failLoad = true
	r := newTestRunner(store, &memProfiles{}, failingPhraser{})

	_, err := r.Chat(context.Background(), "s1", "hi")
	assert.Error(t, err)
}
