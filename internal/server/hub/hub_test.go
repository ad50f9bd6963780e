package hub

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/influence/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func named(names ...string) []model.Profile {
	out := make([]model.Profile, len(names))
	for i, n := range names {
		out[i] = model.NewBlank()
		out[i].Name = n
	}
	return out
}

func TestSubscribe_NoSnapshotYet(t *testing.T) {
	h := New()
	s := h.Subscribe()
	defer s.Cancel()

	select {
	case <-s.C:
		t.Fatal("unexpected snapshot before first publish")
	default:
	}
}

func TestSubscribe_ReceivesLatestImmediately(t *testing.T) {
	h := New()
	h.Publish(named("a"))
	h.Publish(named("a", "b"))

	s := h.Subscribe()
	defer s.Cancel()

	got := <-s.C
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Name)
}

func TestPublish_NewerReplacesUnread(t *testing.T) {
	h := New()
	s := h.Subscribe()
	defer s.Cancel()

	h.Publish(named("first"))
	h.Publish(named("second"))
	h.Publish(named("third"))

	got := <-s.C
	require.Len(t, got, 1)
	assert.Equal(t, "third", got[0].Name)

	select {
	case <-s.C:
		t.Fatal("only the latest snapshot should be queued")
	default:
	}
}

func TestPublish_SubscribersGetIndependentCopies(t *testing.T) {
	h := New()
	s1 := h.Subscribe()
	s2 := h.Subscribe()
	defer s1.Cancel()
	defer s2.Cancel()

	src := named("x")
	h.Publish(src)
	src[0].Biases[0].Text = "mutated by publisher"

	a := <-s1.C
	b := <-s2.C
	a[0].Biases[0].Text = "mutated by s1"

	assert.Equal(t, "", b[0].Biases[0].Text)
}

func TestCancel_ClosesAndDetaches(t *testing.T) {
	h := New()
	s := h.Subscribe()
	require.Equal(t, 1, h.Len())

	s.Cancel()
	s.Cancel()

	_, ok := <-s.C
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())

	assert.NotPanics(t, func() { h.Publish(named("after")) })
}

func TestClose_ClosesAll(t *testing.T) {
	h := New()
	subs := []*Subscription{h.Subscribe(), h.Subscribe()}

	h.Close()

	for _, s := range subs {
		_, ok := <-s.C
		assert.False(t, ok)
		s.Cancel()
	}
	assert.Equal(t, 0, h.Len())
}

func TestPublish_ConcurrentReaders(t *testing.T) {
	h := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		s := h.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for snap := range s.C {
				if len(snap) == 3 {
					s.Cancel()
				}
			}
		}()
	}

	h.Publish(named("a"))
	h.Publish(named("a", "b"))
	h.Publish(named("a", "b", "c"))

	wg.Wait()
	assert.Equal(t, 0, h.Len())
}
