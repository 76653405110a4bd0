// Package game applies player actions and the passage of time to a game
// state. Every exported Engine method is one externally visible operation:
// it either fully applies or returns an error before mutating anything.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Catalog is the reference data the engine reads.
type Catalog interface {
	Planet(code int) (*models.Planet, bool)
	Position(name string) (*models.Position, bool)
	AvailablePositions(planet *models.Planet) []models.Position
	Ship(name string) models.ShipModel
	Crew() []models.CrewMember
}

// Names supplies random names for new staff, companies and ships.
type Names interface {
	Personal() string
	Company() string
	Ship() string
}

// Engine mutates game states. It holds no per-game data and is safe for
// concurrent use on different states.
type Engine struct {
	catalog Catalog
	names   Names
	roller  *dice.Roller
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRoller overrides the dice roller.
func WithRoller(r *dice.Roller) Option {
	return func(e *Engine) {
		e.roller = r
	}
}

// NewEngine creates an engine over the given catalog and name source.
func NewEngine(catalog Catalog, names Names, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		names:   names,
		roller:  dice.NewRoller(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's reference data.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

func (e *Engine) logf(g *models.GameState, typ models.LogType, format string, args ...any) {
	g.Logs = append(g.Logs, models.LogEntry{
		ID:        uuid.NewString(),
		GameDate:  g.Date,
		Timestamp: e.now().UTC(),
		Message:   fmt.Sprintf(format, args...),
		Type:      typ,
	})
}

func (e *Engine) recordRoll(g *models.GameState, roll dice.Roll, purpose string) {
	g.DiceRolls = append(g.DiceRolls, models.DiceRollRecord{
		GameDate:  g.Date,
		Timestamp: e.now().UTC(),
		NumDice:   len(roll.Dice),
		Results:   append([]int(nil), roll.Dice...),
		Total:     roll.Total,
		Manual:    roll.Manual,
		Purpose:   purpose,
	})
}

func (e *Engine) addTransaction(g *models.GameState, amount int, category, description string) {
	g.Transactions = append(g.Transactions, models.Transaction{
		ID:          uuid.NewString(),
		Date:        g.Date,
		Amount:      amount,
		Description: description,
		Category:    category,
	})
}

// currentPlanet returns the planet the ship is docked at.
func (e *Engine) currentPlanet(g *models.GameState) (*models.Planet, error) {
	if g.CurrentPlanetCode == 0 {
		return nil, gameerr.Constraint("the ship is not at a planet")
	}
	p, ok := e.catalog.Planet(g.CurrentPlanetCode)
	if !ok {
		return nil, gameerr.NotFound("planet %d", g.CurrentPlanetCode)
	}
	return p, nil
}

// RollDice throws n dice for a free-form purpose and records the result.
func (e *Engine) RollDice(g *models.GameState, n, sides int, manual []int, purpose string) (dice.Roll, error) {
	if n < 1 || n > 10 {
		return dice.Roll{}, gameerr.Validation("dice count must be between 1 and 10, got %d", n)
	}
	if sides == 0 {
		sides = dice.DefaultSides
	}
	if sides < 2 {
		return dice.Roll{}, gameerr.Validation("dice sides must be at least 2, got %d", sides)
	}
	roll, err := e.roller.Resolve(manual, n, sides)
	if err != nil {
		return dice.Roll{}, err
	}
	if purpose == "" {
		purpose = "manual roll"
	}
	e.recordRoll(g, roll, purpose)
	return roll, nil
}

// AdjustReputation adds delta to the reputation, clamped to its range, and
// returns the new value.
func (e *Engine) AdjustReputation(g *models.GameState, delta int) int {
	old := g.Reputation
	g.SetReputation(old + delta)
	e.logf(g, models.LogInfo, "Reputation changed from %d to %d", old, g.Reputation)
	return g.Reputation
}

// RecentLogs returns up to limit of the newest log entries, newest first.
// A limit of zero or less returns all of them.
func RecentLogs(g *models.GameState, limit int) []models.LogEntry {
	n := len(g.Logs)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.LogEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, g.Logs[i])
	}
	return out
}
