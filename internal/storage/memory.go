package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// MemoryRepository keeps games in process memory. Documents are stored
// serialized so callers never share state with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	games map[string]memoryRecord
}

type memoryRecord struct {
	summary models.GameSummary
	state   []byte
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{games: make(map[string]memoryRecord)}
}

func encode(g *models.GameState) (memoryRecord, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return memoryRecord{}, fmt.Errorf("failed to marshal game state: %w", err)
	}
	return memoryRecord{summary: g.Summary(), state: data}, nil
}

// CreateGame stores a new game
func (r *MemoryRepository) CreateGame(_ context.Context, g *models.GameState) error {
	rec, err := encode(g)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.games[g.ID]; exists {
		return gameerr.Constraint("game %s already exists", g.ID)
	}
	r.games[g.ID] = rec
	return nil
}

// GetGame returns a fresh copy of the stored game, or nil if missing
func (r *MemoryRepository) GetGame(_ context.Context, id string) (*models.GameState, error) {
	r.mu.RLock()
	rec, ok := r.games[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var g models.GameState
	if err := json.Unmarshal(rec.state, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &g, nil
}

// SaveGame replaces an existing game
func (r *MemoryRepository) SaveGame(_ context.Context, g *models.GameState) error {
	rec, err := encode(g)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[g.ID]; !ok {
		return gameerr.NotFound("game %s", g.ID)
	}
	r.games[g.ID] = rec
	return nil
}

// DeleteGame removes a game
func (r *MemoryRepository) DeleteGame(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return gameerr.NotFound("game %s", id)
	}
	delete(r.games, id)
	return nil
}

// ListGames returns summaries ordered by last update, newest first
func (r *MemoryRepository) ListGames(_ context.Context, filters models.ListFilters) ([]models.GameSummary, error) {
	all := r.summaries(func(models.GameSummary) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(all) {
			return nil, nil
		}
		all = all[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(all) {
		all = all[:filters.Limit]
	}
	return all, nil
}

// GetStaleGames returns games last updated before the cutoff, oldest first
func (r *MemoryRepository) GetStaleGames(_ context.Context, before time.Time) ([]models.GameSummary, error) {
	stale := r.summaries(func(s models.GameSummary) bool { return s.UpdatedAt.Before(before) })
	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].UpdatedAt.Before(stale[j].UpdatedAt)
	})
	return stale, nil
}

func (r *MemoryRepository) summaries(keep func(models.GameSummary) bool) []models.GameSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.GameSummary
	for _, rec := range r.games {
		if keep(rec.summary) {
			out = append(out, rec.summary)
		}
	}
	return out
}

// Ping always succeeds
func (r *MemoryRepository) Ping(context.Context) error { return nil }

// Close is a no-op
func (r *MemoryRepository) Close() error { return nil }
