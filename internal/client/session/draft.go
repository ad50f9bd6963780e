package session

import (
	"fmt"

	"github.com/dmitrijs2005/influence/internal/model"
)

// Reconcile copies the live form content into the edit draft. Integer
// fields that do not parse become zero; item reveal flags are kept.
func (s *Session) Reconcile() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == noEdit {
		return ErrNotEditing
	}
	s.reconcileLocked(model.ParseCounter)
	return nil
}

func (s *Session) reconcileLocked(counter func(string) int) {
	values := s.form.snapshot()
	d := s.draft

	for _, k := range model.TextFields() {
		if v, ok := values[string(k)]; ok {
			d.SetText(k, v)
		}
	}
	for _, k := range model.CounterFields() {
		if v, ok := values[string(k)]; ok {
			d.SetCounter(k, counter(v))
		}
	}
	for _, c := range model.Categories() {
		items := d.Items(c)
		for i := range items {
			if v, ok := values[model.ItemKey(c, i)]; ok {
				items[i].Text = v
			}
		}
	}
}

// AddListItem appends a blank hidden item to category c of the edited
// profile. Form content typed so far is kept.
func (s *Session) AddListItem(i int, c model.Category) error {
	return s.restructure(i, c, func(items []model.Item) ([]model.Item, error) {
		return append(items, model.Item{}), nil
	})
}

// RemoveListItem drops item j of category c of the edited profile.
func (s *Session) RemoveListItem(i int, c model.Category, j int) error {
	return s.restructure(i, c, func(items []model.Item) ([]model.Item, error) {
		if j < 0 || j >= len(items) {
			return nil, fmt.Errorf("%w: %s[%d]", ErrItemOutOfRange, c, j)
		}
		out := make([]model.Item, 0, len(items)-1)
		out = append(out, items[:j]...)
		return append(out, items[j+1:]...), nil
	})
}

func (s *Session) restructure(i int, c model.Category, change func([]model.Item) ([]model.Item, error)) error {
	if _, err := model.ParseCategory(string(c)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == noEdit || s.editing != i {
		return ErrNotEditing
	}

	s.reconcileLocked(model.ParseCounter)
	items, err := change(s.draft.Items(c))
	if err != nil {
		return err
	}
	s.draft.SetItems(c, items)
	s.rebuildFormLocked()
	return nil
}

// rebuildFormLocked replaces the form with one built from the draft. A
// chosen photo is carried over.
func (s *Session) rebuildFormLocked() {
	photo := s.form.Photo()
	s.form = newForm(s.draft)
	if photo != nil {
		s.form.ChoosePhoto(photo.Filename, photo.Data)
	}
}
