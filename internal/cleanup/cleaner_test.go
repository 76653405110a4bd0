package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

type fakeStore struct {
	mu        sync.Mutex
	stale     []models.GameSummary
	staleErr  error
	failIDs   map[string]bool
	deleted   []string
	retention time.Duration
}

func (s *fakeStore) GetStale(_ context.Context, retention time.Duration) ([]models.GameSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retention = retention
	return s.stale, s.staleErr
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[id] {
		return errors.New("locked")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) deletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func TestSweepDeletesStaleGames(t *testing.T) {
	store := &fakeStore{
		stale:   []models.GameSummary{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		failIDs: map[string]bool{"b": true},
	}
	c := NewCleaner(store, time.Minute, 72*time.Hour)

	assert.Equal(t, 2, c.Sweep(context.Background()))
	assert.Equal(t, []string{"a", "c"}, store.deletedIDs())
	assert.Equal(t, 72*time.Hour, store.retention)
}

func TestSweepSurvivesStoreErrors(t *testing.T) {
	store := &fakeStore{staleErr: errors.New("db down")}
	c := NewCleaner(store, time.Minute, time.Hour)
	assert.Zero(t, c.Sweep(context.Background()))
}

func TestDisabledCleanerDoesNothing(t *testing.T) {
	store := &fakeStore{stale: []models.GameSummary{{ID: "a"}}}
	c := NewCleaner(store, 0, 0)

	assert.False(t, c.Enabled())
	assert.Equal(t, time.Hour, c.interval)
	c.Start(context.Background())
	assert.Zero(t, c.Sweep(context.Background()))
	assert.Empty(t, store.deletedIDs())
}

func TestStartRunsImmediately(t *testing.T) {
	store := &fakeStore{stale: []models.GameSummary{{ID: "a"}}}
	c := NewCleaner(store, time.Hour, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx)

	assert.Eventually(t, func() bool {
		return len(store.deletedIDs()) == 1
	}, time.Second, 5*time.Millisecond)
}
