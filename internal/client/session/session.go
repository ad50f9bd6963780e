// Package session is the client-side state of one influence session: the
// latest authoritative snapshot, which profile is selected or being
// edited, the edit draft and the operator's quick actions.
//
// All methods are safe for concurrent use; snapshots are applied from the
// stream goroutine while the user interface calls the rest.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/model"
)

// Emitter sends outbound profile events. Calls never block on the network
// and report no result: delivery is fire-and-forget.
type Emitter interface {
	CreateProfile(p model.Profile)
	UpdateProfile(index int, id string, p model.Profile)
	DeleteProfile(index int, id string)
}

// PhotoUploader stores an image and returns its identifier.
type PhotoUploader interface {
	UploadPhoto(ctx context.Context, filename string, data []byte) (string, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer func(prompt string) bool

const noEdit = -1

type Session struct {
	mu         sync.Mutex
	privileged bool
	emit       Emitter
	photos     PhotoUploader
	log        logging.Logger

	profiles []model.Profile
	live     bool

	selected   int
	selectedID string

	editing   int
	editingID string
	draft     *model.Profile
	form      *Form

	// editSeq numbers edits; savingEdit is the edit whose save is running.
	editSeq    uint64
	savingEdit uint64

	pendingCreation bool
}

// New returns an empty session. privileged is fixed for the session's
// lifetime.
func New(privileged bool, emit Emitter, photos PhotoUploader, log logging.Logger) *Session {
	return &Session{
		privileged: privileged,
		emit:       emit,
		photos:     photos,
		log:        log,
		profiles:   []model.Profile{},
		editing:    noEdit,
	}
}

// Privileged reports whether the session belongs to the operator.
func (s *Session) Privileged() bool { return s.privileged }

// ApplySnapshot replaces the whole collection with records.
//
// A pending creation is resolved here: the last record is selected and
// opened for editing. Otherwise the selection and the edit target follow
// their records by id; an edit whose record disappeared is closed.
func (s *Session) ApplySnapshot(records []model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = normalized(records)
	s.live = true

	if s.pendingCreation && len(s.profiles) > 0 {
		s.pendingCreation = false
		last := len(s.profiles) - 1
		s.selectLocked(last)
		s.startEditLocked(last)
		s.log.Debug(context.Background(), "created profile opened for editing", "index", last)
		return
	}

	// a selected record that disappeared leaves the cursor where it was
	if sel := s.indexOf(s.selectedID, s.selected); sel != noEdit {
		s.selected = sel
	}
	s.selected = max(0, min(s.selected, len(s.profiles)-1))
	if len(s.profiles) > 0 {
		s.selectedID = s.profiles[s.selected].ID
	} else {
		s.selectedID = ""
	}

	if s.editing != noEdit {
		// an unconfirmed record has no id and keeps its position
		i := s.indexOf(s.editingID, s.editing)
		if i == noEdit || i >= len(s.profiles) {
			s.log.Info(context.Background(), "edited profile removed remotely", "id", s.editingID)
			s.stopEditLocked()
		} else {
			s.editing = i
		}
	}
}

// Seed fills an empty session from the local cache. It is ignored once
// a live snapshot has been applied.
func (s *Session) Seed(records []model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live {
		return
	}
	s.profiles = normalized(records)
	s.selected = 0
	s.selectedID = ""
	if len(s.profiles) > 0 {
		s.selectedID = s.profiles[0].ID
	}
}

// Profiles returns a copy of the current collection.
func (s *Session) Profiles() []model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneAll(s.profiles)
}

// Len returns the number of profiles.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// Selected returns the selected index.
func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Editing returns the index of the profile being edited.
func (s *Session) Editing() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing, s.editing != noEdit
}

// PendingCreation reports whether a requested profile has not arrived yet.
func (s *Session) PendingCreation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingCreation
}

// Mode returns how profile i is presented.
func (s *Session) Mode(i int) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modeLocked(i)
}

func (s *Session) modeLocked(i int) Mode {
	switch {
	case !s.privileged:
		return Viewing
	case s.editing != noEdit && s.editing == i:
		return Editing
	default:
		return QuickView
	}
}

// SelectProfile shows profile i and closes any open edit.
func (s *Session) SelectProfile(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.stopEditLocked()
	s.selectLocked(i)
	return nil
}

// RequestCreate asks the server for a new blank profile. Nothing changes
// locally until the next snapshot, which opens the new record for editing.
func (s *Session) RequestCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.privileged {
		return ErrNotPrivileged
	}
	s.pendingCreation = true
	s.emit.CreateProfile(model.NewBlank())
	return nil
}

// StartEdit opens the form for profile i on a private copy of the record.
func (s *Session) StartEdit(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.privileged {
		return ErrNotPrivileged
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.selectLocked(i)
	s.startEditLocked(i)
	return nil
}

// CancelEdit closes the form and discards the draft. Nothing is sent.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopEditLocked()
}

// Form returns the live form, or nil when nothing is being edited.
func (s *Session) Form() *Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *Session) selectLocked(i int) {
	s.selected = i
	s.selectedID = s.profiles[i].ID
}

func (s *Session) startEditLocked(i int) {
	d := s.profiles[i].Clone()
	s.editSeq++
	s.editing = i
	s.editingID = d.ID
	s.draft = &d
	s.form = newForm(s.draft)
}

func (s *Session) stopEditLocked() {
	s.editing = noEdit
	s.editingID = ""
	s.draft = nil
	s.form = nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.profiles) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.profiles))
	}
	return nil
}

// indexOf finds id in the collection. Without an id (records not yet
// confirmed by the server) the fallback position is kept.
func (s *Session) indexOf(id string, fallback int) int {
	if id == "" {
		return fallback
	}
	for i, p := range s.profiles {
		if p.ID == id {
			return i
		}
	}
	return noEdit
}

func normalized(records []model.Profile) []model.Profile {
	out := model.CloneAll(records)
	for i := range out {
		out[i].Normalize()
	}
	return out
}
