package session

import (
	"testing"

	"github.com/dmitrijs2005/influence/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_CopiesFormIntoDraft(t *testing.T) {
	p := profile("a", "A")
	p.Biases = []model.Item{{Text: "old", Revealed: true}}
	s, _, _ := newOperator(t, p)
	require.NoError(t, s.StartEdit(0))

	f := s.Form()
	require.NoError(t, f.Set("name", "New name"))
	require.NoError(t, f.Set("influence_successes", "7 points"))
	require.NoError(t, f.Set("successes_needed", "lots"))
	require.NoError(t, f.Set("biases-0", "fresh"))

	require.NoError(t, s.Reconcile())

	v, err := s.View(0)
	require.NoError(t, err)
	assert.Equal(t, "New name", v.Name)

	s.mu.Lock()
	d := *s.draft
	s.mu.Unlock()
	assert.Equal(t, "New name", d.Name)
	assert.Equal(t, 7, d.InfluenceSuccesses)
	assert.Equal(t, 0, d.SuccessesNeeded, "unparsable counter becomes zero")
	assert.Equal(t, []model.Item{{Text: "fresh", Revealed: true}}, d.Biases)
	assert.Equal(t, "old", s.Profiles()[0].Biases[0].Text, "store untouched until save")
}

func TestReconcile_NotEditing(t *testing.T) {
	s, _, _ := newOperator(t, profile("a", "A"))
	assert.ErrorIs(t, s.Reconcile(), ErrNotEditing)
}

func TestAddListItem_PreservesTypedContent(t *testing.T) {
	s, _, _ := newOperator(t, profile("a", "A"))
	require.NoError(t, s.StartEdit(0))
	require.NoError(t, s.Form().Set("goal", "revenge"))
	require.NoError(t, s.Form().Set("strengths-0", "Stubborn"))

	require.NoError(t, s.AddListItem(0, model.Strengths))

	f := s.Form()
	v, _ := f.Get("goal")
	assert.Equal(t, "revenge", v)
	v, _ = f.Get("strengths-0")
	assert.Equal(t, "Stubborn", v)
	v, ok := f.Get("strengths-1")
	require.True(t, ok, "fresh field for the new item")
	assert.Equal(t, "", v)

	view, err := s.View(0)
	require.NoError(t, err)
	items := view.Categories[1].Items
	require.Len(t, items, 2)
	assert.False(t, items[1].Revealed, "new items start hidden")
	assert.Equal(t, "Add Strength", view.Categories[1].AddLabel)
}

func TestRemoveListItem_PreservesTypedContent(t *testing.T) {
	p := profile("a", "A")
	p.Weaknesses = []model.Item{{Text: "w0"}, {Text: "w1", Revealed: true}, {Text: "w2"}}
	s, _, _ := newOperator(t, p)
	require.NoError(t, s.StartEdit(0))
	require.NoError(t, s.Form().Set("weaknesses-2", "typed w2"))
	require.NoError(t, s.Form().Set("name", "typed name"))

	require.NoError(t, s.RemoveListItem(0, model.Weaknesses, 0))

	f := s.Form()
	v, _ := f.Get("weaknesses-0")
	assert.Equal(t, "w1", v)
	v, _ = f.Get("weaknesses-1")
	assert.Equal(t, "typed w2", v)
	_, ok := f.Get("weaknesses-2")
	assert.False(t, ok)
	v, _ = f.Get("name")
	assert.Equal(t, "typed name", v)

	view, err := s.View(0)
	require.NoError(t, err)
	assert.True(t, view.Categories[2].Items[0].Revealed, "reveal flag moves with its item")
}

func TestStructuralEdits_InterleavedSequence(t *testing.T) {
	s, em, _ := newOperator(t, profile("a", "A"))
	require.NoError(t, s.StartEdit(0))

	require.NoError(t, s.Form().Set("biases-0", "first"))
	require.NoError(t, s.AddListItem(0, model.Biases))
	require.NoError(t, s.Form().Set("biases-1", "second"))
	require.NoError(t, s.AddListItem(0, model.Biases))
	require.NoError(t, s.Form().Set("biases-2", "third"))
	require.NoError(t, s.RemoveListItem(0, model.Biases, 1))
	require.NoError(t, s.AddListItem(0, model.InfluenceSkills))
	require.NoError(t, s.Form().Set("influence_skills-1", "Diplomacy"))
	require.NoError(t, s.Form().Set("influence_skills-0", "Intimidate"))

	require.NoError(t, s.Save(t.Context(), 0))

	got := em.last(t).profile
	assert.Equal(t, []model.Item{{Text: "first"}, {Text: "third"}}, got.Biases)
	assert.Equal(t, []model.Item{{Text: "Intimidate"}, {Text: "Diplomacy"}}, got.InfluenceSkills)
}

func TestStructuralEdits_CarryPhotoChoice(t *testing.T) {
	s, _, _ := newOperator(t, profile("a", "A"))
	require.NoError(t, s.StartEdit(0))
	s.Form().ChoosePhoto("face.png", []byte("png"))

	require.NoError(t, s.AddListItem(0, model.Biases))

	require.NotNil(t, s.Form().Photo())
	assert.Equal(t, "face.png", s.Form().Photo().Filename)
}

func TestStructuralEdits_Errors(t *testing.T) {
	s, _, _ := newOperator(t, profile("a", "A"), profile("b", "B"))

	assert.ErrorIs(t, s.AddListItem(0, model.Biases), ErrNotEditing)

	require.NoError(t, s.StartEdit(0))
	assert.ErrorIs(t, s.AddListItem(1, model.Biases), ErrNotEditing, "only the edit target")
	assert.ErrorIs(t, s.AddListItem(0, "hobbies"), ErrUnknownCategory)
	assert.ErrorIs(t, s.RemoveListItem(0, model.Biases, 5), ErrItemOutOfRange)
	assert.ErrorIs(t, s.RemoveListItem(0, model.Biases, -1), ErrItemOutOfRange)
}
