package session

import (
	"strconv"

	"github.com/dmitrijs2005/influence/internal/model"
)

// Placeholder stands in for the hidden items of a category.
const Placeholder = "???"

// FieldView is one labelled scalar value. Key is set in Editing mode.
type FieldView struct {
	Key   string
	Label string
	Value string
}

// ItemView is one rendered trait. Key is set in Editing mode.
type ItemView struct {
	Key         string
	Text        string
	Revealed    bool
	Placeholder bool
}

// CategoryView is one rendered trait list.
type CategoryView struct {
	Category model.Category
	Label    string
	AddLabel string
	Items    []ItemView
}

// ProfileView is what the user interface draws for one profile.
type ProfileView struct {
	Index      int
	ID         string
	Mode       Mode
	Name       string
	PhotoURL   string
	Influence  string
	Fields     []FieldView
	Categories []CategoryView
	// PendingPhoto is the file chosen in the form, if any.
	PendingPhoto string
}

// View projects profile i for the session's audience and mode.
func (s *Session) View(i int) (ProfileView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(i); err != nil {
		return ProfileView{}, err
	}

	mode := s.modeLocked(i)
	switch mode {
	case Editing:
		return s.editView(i), nil
	case QuickView:
		return quickView(i, s.profiles[i]), nil
	default:
		return observerView(i, s.profiles[i]), nil
	}
}

func observerView(i int, p model.Profile) ProfileView {
	v := ProfileView{
		Index:     i,
		ID:        p.ID,
		Mode:      Viewing,
		Name:      p.Name,
		PhotoURL:  p.PhotoURL,
		Influence: strconv.Itoa(p.InfluenceSuccesses),
	}
	for _, k := range model.PublicFields() {
		v.Fields = append(v.Fields, FieldView{Label: k.Label(), Value: p.Text(k)})
	}
	for _, c := range model.Categories() {
		var items []ItemView
		hidden := false
		for _, it := range p.Items(c) {
			if !it.Revealed {
				hidden = true
				continue
			}
			items = append(items, ItemView{Text: it.Text, Revealed: true})
		}
		if hidden {
			items = append(items, ItemView{Text: Placeholder, Placeholder: true})
		}
		if len(items) == 0 {
			continue
		}
		v.Categories = append(v.Categories, CategoryView{Category: c, Label: c.Label(), Items: items})
	}
	return v
}

func quickView(i int, p model.Profile) ProfileView {
	v := ProfileView{
		Index:     i,
		ID:        p.ID,
		Mode:      QuickView,
		Name:      p.Name,
		PhotoURL:  p.PhotoURL,
		Influence: strconv.Itoa(p.InfluenceSuccesses) + "/" + strconv.Itoa(p.SuccessesNeeded),
	}
	// name is the heading
	for _, k := range model.TextFields()[1:] {
		v.Fields = append(v.Fields, FieldView{Label: k.Label(), Value: p.Text(k)})
	}
	for _, c := range model.Categories() {
		cv := CategoryView{Category: c, Label: c.Label()}
		for _, it := range p.Items(c) {
			cv.Items = append(cv.Items, ItemView{Text: it.Text, Revealed: it.Revealed})
		}
		v.Categories = append(v.Categories, cv)
	}
	return v
}

func (s *Session) editView(i int) ProfileView {
	d := s.draft
	values := s.form.snapshot()
	v := ProfileView{
		Index:    i,
		ID:       d.ID,
		Mode:     Editing,
		Name:     values[string(model.FieldName)],
		PhotoURL: d.PhotoURL,
		Influence: values[string(model.FieldInfluenceSuccesses)] + "/" +
			values[string(model.FieldSuccessesNeeded)],
	}
	if choice := s.form.Photo(); choice != nil {
		v.PendingPhoto = choice.Filename
	}

	keys := append(model.TextFields(), model.CounterFields()...)
	for _, k := range keys {
		v.Fields = append(v.Fields, FieldView{Key: string(k), Label: k.Label(), Value: values[string(k)]})
	}
	for _, c := range model.Categories() {
		cv := CategoryView{Category: c, Label: c.Label(), AddLabel: "Add " + c.Singular()}
		for j, it := range d.Items(c) {
			key := model.ItemKey(c, j)
			cv.Items = append(cv.Items, ItemView{Key: key, Text: values[key], Revealed: it.Revealed})
		}
		v.Categories = append(v.Categories, cv)
	}
	return v
}
