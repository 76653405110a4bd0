package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	// Set pool configuration
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25 // default
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 2
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Pool exposes the connection pool for migrations
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateGame inserts a new game document
func (r *PostgresRepository) CreateGame(ctx context.Context, g *models.GameState) error {
	stateJSON, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	query := `
		INSERT INTO games (id, name, game_date, treasury, reputation, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		g.ID,
		g.Name,
		g.Date.String(),
		g.Treasury,
		g.Reputation,
		stateJSON,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetGame loads a game document by ID
func (r *PostgresRepository) GetGame(ctx context.Context, id string) (*models.GameState, error) {
	var stateJSON []byte
	err := r.pool.QueryRow(ctx, `SELECT state FROM games WHERE id = $1`, id).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var g models.GameState
	if err := json.Unmarshal(stateJSON, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	return &g, nil
}

// SaveGame replaces the stored document of an existing game
func (r *PostgresRepository) SaveGame(ctx context.Context, g *models.GameState) error {
	stateJSON, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	query := `
		UPDATE games
		SET name = $2, game_date = $3, treasury = $4, reputation = $5, state = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		g.ID,
		g.Name,
		g.Date.String(),
		g.Treasury,
		g.Reputation,
		stateJSON,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	if result.RowsAffected() == 0 {
		return gameerr.NotFound("game %s", g.ID)
	}

	return nil
}

// DeleteGame deletes a game by ID
func (r *PostgresRepository) DeleteGame(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if result.RowsAffected() == 0 {
		return gameerr.NotFound("game %s", id)
	}

	return nil
}

// ListGames returns game summaries, most recently played first
func (r *PostgresRepository) ListGames(ctx context.Context, filters models.ListFilters) ([]models.GameSummary, error) {
	query := `
		SELECT id, name, game_date, treasury, reputation, updated_at
		FROM games
		ORDER BY updated_at DESC
	`
	args := make([]interface{}, 0)
	argNum := 1

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
		argNum++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	return r.querySummaries(ctx, query, args...)
}

// GetStaleGames returns games not updated since before
func (r *PostgresRepository) GetStaleGames(ctx context.Context, before time.Time) ([]models.GameSummary, error) {
	query := `
		SELECT id, name, game_date, treasury, reputation, updated_at
		FROM games
		WHERE updated_at < $1
		ORDER BY updated_at ASC
	`
	return r.querySummaries(ctx, query, before)
}

func (r *PostgresRepository) querySummaries(ctx context.Context, query string, args ...interface{}) ([]models.GameSummary, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []models.GameSummary
	for rows.Next() {
		var s models.GameSummary
		var date string
		if err := rows.Scan(&s.ID, &s.Name, &date, &s.Treasury, &s.Reputation, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		if s.Date, err = calendar.Parse(date); err != nil {
			return nil, fmt.Errorf("game %s has a bad date: %w", s.ID, err)
		}
		games = append(games, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}
