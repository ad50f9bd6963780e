package profiles

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/influence/internal/common"
	"github.com/dmitrijs2005/influence/internal/model"
)

// MemoryRepository keeps profiles in process memory. It is used when no
// database DSN is configured; contents are lost on restart.
type MemoryRepository struct {
	mu       sync.Mutex
	profiles []model.Profile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.CloneAll(r.profiles), nil
}

func (r *MemoryRepository) Append(_ context.Context, p model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p.Clone())
	return nil
}

func (r *MemoryRepository) Replace(_ context.Context, p model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(p.ID)
	if i < 0 {
		return common.ErrorNotFound
	}
	r.profiles[i] = p.Clone()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return common.ErrorNotFound
	}
	r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
	return nil
}

func (r *MemoryRepository) find(id string) int {
	for i, p := range r.profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}
