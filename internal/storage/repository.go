package storage

import (
	"context"
	"time"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Repository defines the interface for game persistence. Games are stored
// as whole documents: every save replaces the previous version.
type Repository interface {
	// Games
	CreateGame(ctx context.Context, g *models.GameState) error
	// GetGame returns nil without error when the game does not exist.
	GetGame(ctx context.Context, id string) (*models.GameState, error)
	SaveGame(ctx context.Context, g *models.GameState) error
	DeleteGame(ctx context.Context, id string) error
	ListGames(ctx context.Context, filters models.ListFilters) ([]models.GameSummary, error)
	GetStaleGames(ctx context.Context, before time.Time) ([]models.GameSummary, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
