package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/influence/internal/model"
)

// ToggleReveal flips the revealed flag of item j in category c and commits
// the profile at once. The item text is untouched.
func (s *Session) ToggleReveal(i int, c model.Category, j int) error {
	if _, err := model.ParseCategory(string(c)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return s.quickCommit(i, func(p *model.Profile) error {
		items := p.Items(c)
		if j < 0 || j >= len(items) {
			return fmt.Errorf("%w: %s[%d]", ErrItemOutOfRange, c, j)
		}
		items[j].Revealed = !items[j].Revealed
		return nil
	})
}

// IncrementInfluence adds one influence success.
func (s *Session) IncrementInfluence(i int) error {
	return s.quickCommit(i, func(p *model.Profile) error {
		p.InfluenceSuccesses++
		return nil
	})
}

// ResetInfluence sets influence successes back to zero.
func (s *Session) ResetInfluence(i int) error {
	return s.quickCommit(i, func(p *model.Profile) error {
		p.InfluenceSuccesses = 0
		return nil
	})
}

// quickCommit applies change to a copy of profile i, stores it locally and
// emits it as a full update.
func (s *Session) quickCommit(i int, change func(*model.Profile) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.privileged {
		return ErrNotPrivileged
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if s.editing == i {
		return ErrEditInProgress
	}

	p := s.profiles[i].Clone()
	if err := change(&p); err != nil {
		return err
	}
	s.profiles[i] = p
	s.emit.UpdateProfile(i, p.ID, p.Clone())
	return nil
}

// DeleteProfile asks confirm and, when approved, requests removal of
// profile i. The local collection changes only with the next snapshot.
func (s *Session) DeleteProfile(i int, confirm Confirmer) (bool, error) {
	s.mu.Lock()
	if !s.privileged {
		s.mu.Unlock()
		return false, ErrNotPrivileged
	}
	if err := s.checkIndex(i); err != nil {
		s.mu.Unlock()
		return false, err
	}
	id, name := s.profiles[i].ID, s.profiles[i].Name
	s.mu.Unlock()

	prompt := "Delete this profile?"
	if name != "" {
		prompt = fmt.Sprintf("Delete profile %q?", name)
	}
	if confirm == nil || !confirm(prompt) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i = s.indexOf(id, i)
	if i == noEdit || i >= len(s.profiles) {
		s.log.Info(context.Background(), "profile gone before delete was confirmed", "id", id)
		return false, nil
	}
	if s.editing == i {
		s.stopEditLocked()
	}
	s.emit.DeleteProfile(i, id)
	return true, nil
}
