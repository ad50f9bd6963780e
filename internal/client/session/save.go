package session

import (
	"context"

	"github.com/dmitrijs2005/influence/internal/model"
)

// Save commits the edited profile i.
//
// A chosen photo is uploaded first with the session unlocked, so snapshots
// keep arriving meanwhile. A failed upload, or one that returns no
// identifier, keeps the previous photo reference. The form content is then
// sanitized, empty items are dropped and the complete record is emitted as
// one update. The edit closes on success; what is shown next is decided by
// the following snapshot. Only one save per edit runs at a time; an upload
// still pending for an abandoned edit does not hold up other edits.
func (s *Session) Save(ctx context.Context, i int) error {
	s.mu.Lock()
	if !s.privileged {
		s.mu.Unlock()
		return ErrNotPrivileged
	}
	if s.editing == noEdit || s.editing != i {
		s.mu.Unlock()
		return ErrNotEditing
	}
	if s.savingEdit == s.editSeq {
		s.mu.Unlock()
		return ErrSaveInProgress
	}
	edit := s.editSeq
	s.savingEdit = edit
	id := s.editingID
	photoURL := s.draft.PhotoURL
	choice := s.form.Photo()
	s.mu.Unlock()

	if choice != nil {
		photoURL = s.uploadPhoto(ctx, choice, photoURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.savingEdit == edit {
		s.savingEdit = 0
	}

	if s.editing == noEdit || s.editSeq != edit {
		s.log.Warn(ctx, "edit closed during save, changes dropped", "id", id)
		return ErrNotEditing
	}

	s.reconcileLocked(cleanCounter)
	p := committed(*s.draft)
	p.PhotoURL = photoURL

	idx := s.editing
	s.profiles[idx] = p
	s.emit.UpdateProfile(idx, p.ID, p.Clone())
	s.stopEditLocked()
	return nil
}

func (s *Session) uploadPhoto(ctx context.Context, choice *PhotoChoice, fallback string) string {
	ref, err := s.photos.UploadPhoto(ctx, choice.Filename, choice.Data)
	if err != nil {
		s.log.Warn(ctx, "photo upload failed, keeping previous photo", "file", choice.Filename, "error", err)
		return fallback
	}
	if ref == "" {
		s.log.Warn(ctx, "photo upload returned no identifier, keeping previous photo", "file", choice.Filename)
		return fallback
	}
	return model.PhotoURL(ref)
}

// cleanCounter parses a counter the way it is committed: markup is
// stripped before the number is read.
func cleanCounter(v string) int {
	return model.ParseCounter(model.Sanitize(v))
}

// committed returns the sanitized form of a draft: text fields stripped of
// markup and items whose sanitized text is empty removed.
func committed(d model.Profile) model.Profile {
	p := d.Clone()
	for _, k := range model.TextFields() {
		p.SetText(k, model.Sanitize(p.Text(k)))
	}
	for _, c := range model.Categories() {
		src := p.Items(c)
		kept := make([]model.Item, 0, len(src))
		for _, it := range src {
			it.Text = model.Sanitize(it.Text)
			if it.Text == "" {
				continue
			}
			kept = append(kept, it)
		}
		p.SetItems(c, kept)
	}
	return p
}
