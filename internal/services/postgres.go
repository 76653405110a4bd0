package services

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresProvider checks the game database for the readiness endpoint
type PostgresProvider struct {
	BaseProvider
	db *sql.DB
}

// NewPostgresProvider opens a small database/sql pool on dsn
func NewPostgresProvider(ctx context.Context, dsn string) (*PostgresProvider, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresProvider{
		BaseProvider: BaseProvider{serviceType: "postgres"},
		db:           db,
	}, nil
}

// HealthCheck verifies PostgreSQL connectivity
func (p *PostgresProvider) HealthCheck(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// GameCount returns the number of stored games
func (p *PostgresProvider) GameCount(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}

// Stats reports the stored game count and connection usage
func (p *PostgresProvider) Stats(ctx context.Context) (map[string]any, error) {
	games, err := p.GameCount(ctx)
	if err != nil {
		return nil, err
	}
	st := p.db.Stats()
	return map[string]any{
		"games":            games,
		"open_connections": st.OpenConnections,
	}, nil
}

// Close closes the connection pool
func (p *PostgresProvider) Close() error {
	return p.db.Close()
}
