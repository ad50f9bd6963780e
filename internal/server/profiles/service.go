// Package profiles owns the authoritative profile collection: it applies
// create, update and delete events, persists them and publishes the full
// snapshot after every change.
package profiles

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/logging"
	"github.com/dmitrijs2005/influence/internal/model"
	profilerepo "github.com/dmitrijs2005/influence/internal/server/repositories/profiles"
	"github.com/google/uuid"
)

// Publisher receives every committed snapshot.
type Publisher interface {
	Publish(snapshot []model.Profile)
}

// Service serializes mutations. The in-memory slice mirrors the repository
// and is only changed after the repository accepted the write.
type Service struct {
	mu       sync.Mutex
	repo     profilerepo.Repository
	pub      Publisher
	log      logging.Logger
	profiles []model.Profile
}

// newID is a seam for tests.
var newID = func() string { return uuid.NewString() }

// NewService loads the stored collection and publishes it once.
func NewService(ctx context.Context, repo profilerepo.Repository, pub Publisher, log logging.Logger) (*Service, error) {
	list, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	if list == nil {
		list = []model.Profile{}
	}
	s := &Service{repo: repo, pub: pub, log: log, profiles: list}
	pub.Publish(model.CloneAll(list))
	return s, nil
}

// Snapshot returns a copy of the current collection.
func (s *Service) Snapshot() []model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneAll(s.profiles)
}

// Create appends p with a fresh id at version 1. Any id or version sent
// by the client is ignored.
func (s *Service) Create(ctx context.Context, p model.Profile) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := p.Clone()
	rec.Normalize()
	rec.ID = newID()
	rec.Version = 1

	if err := s.repo.Append(ctx, rec); err != nil {
		return model.Profile{}, fmt.Errorf("append profile: %w", err)
	}
	s.profiles = append(s.profiles, rec)
	s.log.Info(ctx, "profile created", "id", rec.ID, "index", len(s.profiles)-1)

	s.publishLocked()
	return rec.Clone(), nil
}

// Update replaces the addressed record with p in full.
//
// The target is found by id; index is used only when id is empty. A record
// whose version differs from the stored one was edited from a stale copy:
// the write still wins, but the overwrite is logged.
func (s *Service) Update(ctx context.Context, index int, id string, p model.Profile) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.resolveLocked(index, id)
	if err != nil {
		return model.Profile{}, err
	}
	cur := s.profiles[i]

	if p.Version != 0 && p.Version != cur.Version {
		s.log.Warn(ctx, "concurrent overwrite",
			"id", cur.ID, "index", i,
			"stored_version", cur.Version, "client_version", p.Version,
			"error", common.ErrVersionConflict)
	}

	rec := p.Clone()
	rec.Normalize()
	rec.ID = cur.ID
	rec.Version = cur.Version + 1

	if err := s.repo.Replace(ctx, rec); err != nil {
		return model.Profile{}, fmt.Errorf("replace profile: %w", err)
	}
	s.profiles[i] = rec
	s.log.Debug(ctx, "profile updated", "id", rec.ID, "index", i, "version", rec.Version)

	s.publishLocked()
	return rec.Clone(), nil
}

// Delete removes the addressed record, resolved like Update.
func (s *Service) Delete(ctx context.Context, index int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.resolveLocked(index, id)
	if err != nil {
		return err
	}
	target := s.profiles[i].ID

	if err := s.repo.Delete(ctx, target); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	s.log.Info(ctx, "profile deleted", "id", target, "index", i)

	s.publishLocked()
	return nil
}

func (s *Service) resolveLocked(index int, id string) (int, error) {
	if id != "" {
		for i, p := range s.profiles {
			if p.ID == id {
				return i, nil
			}
		}
		return 0, fmt.Errorf("profile %s: %w", id, common.ErrorNotFound)
	}
	if index < 0 || index >= len(s.profiles) {
		return 0, fmt.Errorf("profile at %d: %w", index, common.ErrorNotFound)
	}
	return index, nil
}

func (s *Service) publishLocked() {
	s.pub.Publish(model.CloneAll(s.profiles))
}
