// Package session stores games and serializes every change to a game
// behind a lock, so each player action is one load-modify-save cycle.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/services"
	"github.com/terra-clan/spacegom-engine/internal/storage"
	"github.com/terra-clan/spacegom-engine/internal/stream"
)

// Notification kinds for lifecycle changes.
const (
	KindCreated = "game_created"
	KindDeleted = "game_deleted"
)

// Manager owns game persistence for the API.
type Manager struct {
	engine     *game.Engine
	repo       storage.Repository
	locker     services.Locker
	hub        *stream.Hub
	difficulty models.Difficulty
	now        func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithDefaultDifficulty sets the difficulty used when a request names none.
func WithDefaultDifficulty(d models.Difficulty) Option {
	return func(m *Manager) {
		m.difficulty = d
	}
}

// WithClock overrides the wall clock used for update stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager. A nil hub disables notifications.
func NewManager(engine *game.Engine, repo storage.Repository, locker services.Locker, hub *stream.Hub, opts ...Option) *Manager {
	m := &Manager{
		engine:     engine,
		repo:       repo,
		locker:     locker,
		hub:        hub,
		difficulty: models.DifficultyNormal,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Engine returns the engine used for updates.
func (m *Manager) Engine() *game.Engine {
	return m.engine
}

// Ping checks the game store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.repo.Ping(ctx)
}

// Create builds and stores a new game.
func (m *Manager) Create(ctx context.Context, p game.NewGameParams) (*models.GameState, error) {
	if p.Difficulty == "" {
		p.Difficulty = string(m.difficulty)
	}
	g, err := m.engine.NewGame(p)
	if err != nil {
		return nil, err
	}
	g.CreatedAt = m.now().UTC()
	g.UpdatedAt = g.CreatedAt
	if err := m.repo.CreateGame(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	slog.Info("game created",
		"game_id", g.ID,
		"name", g.Name,
		"difficulty", g.Difficulty,
		"ship", g.ShipModel,
	)
	m.publish(g, KindCreated, "", nil)
	return g, nil
}

// Get loads a game.
func (m *Manager) Get(ctx context.Context, id string) (*models.GameState, error) {
	g, err := m.repo.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, gameerr.NotFound("game %s", id)
	}
	return g, nil
}

// List returns game summaries, most recently played first.
func (m *Manager) List(ctx context.Context, filters models.ListFilters) ([]models.GameSummary, error) {
	return m.repo.ListGames(ctx, filters)
}

// Delete removes a game and disconnects its stream subscribers.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock, err := m.locker.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer m.release(ctx, id, unlock)

	g, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := m.repo.DeleteGame(ctx, id); err != nil {
		return err
	}
	if m.hub != nil {
		m.hub.Publish(models.Notification{
			GameID:    id,
			Kind:      KindDeleted,
			GameDate:  g.Date,
			Message:   fmt.Sprintf("Game %s deleted", g.Name),
			Timestamp: m.now().UTC(),
		})
		m.hub.CloseGame(id)
	}
	slog.Info("game deleted", "game_id", id)
	return nil
}

// GetStale returns games nobody has touched for longer than retention.
func (m *Manager) GetStale(ctx context.Context, retention time.Duration) ([]models.GameSummary, error) {
	return m.repo.GetStaleGames(ctx, m.now().Add(-retention))
}

// Update runs fn on the stored game under the game's lock and saves the
// result. When fn fails nothing is saved. kind labels the notification sent
// to stream subscribers.
func (m *Manager) Update(ctx context.Context, id, kind string, fn func(*game.Engine, *models.GameState) (any, error)) (any, error) {
	unlock, err := m.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer m.release(ctx, id, unlock)

	g, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	logsBefore := len(g.Logs)
	result, err := fn(m.engine, g)
	if err != nil {
		slog.Debug("game update rejected", "game_id", id, "kind", kind, "error", err)
		return nil, err
	}

	g.UpdatedAt = m.now().UTC()
	if err := m.repo.SaveGame(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	var message string
	if len(g.Logs) > logsBefore {
		message = g.Logs[len(g.Logs)-1].Message
	}
	m.publish(g, kind, message, result)
	return result, nil
}

// Apply is Update with a typed result.
func Apply[T any](ctx context.Context, m *Manager, id, kind string, fn func(*game.Engine, *models.GameState) (T, error)) (T, error) {
	var zero T
	out, err := m.Update(ctx, id, kind, func(e *game.Engine, g *models.GameState) (any, error) {
		return fn(e, g)
	})
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

// View runs a read-only fn on a freshly loaded game.
func View[T any](ctx context.Context, m *Manager, id string, fn func(*game.Engine, *models.GameState) (T, error)) (T, error) {
	var zero T
	g, err := m.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	return fn(m.engine, g)
}

func (m *Manager) release(ctx context.Context, id string, unlock services.Unlock) {
	if err := unlock(context.WithoutCancel(ctx)); err != nil {
		slog.Error("failed to release game lock", "game_id", id, "error", err)
	}
}

func (m *Manager) publish(g *models.GameState, kind, message string, data any) {
	if m.hub == nil {
		return
	}
	delivered := m.hub.Publish(models.Notification{
		GameID:    g.ID,
		Kind:      kind,
		GameDate:  g.Date,
		Message:   message,
		Data:      data,
		Timestamp: m.now().UTC(),
	})
	if delivered > 0 {
		slog.Debug("notification published", "game_id", g.ID, "kind", kind, "subscribers", delivered)
	}
}
