package models

import (
	"strings"
	"time"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// Reputation bounds
const (
	ReputationMin = -5
	ReputationMax = 5
)

// Difficulty selects the starting treasury
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty name
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyNormal, "":
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", gameerr.Validation("invalid difficulty %q", s)
	}
}

// StartingFunds returns the initial treasury for the difficulty
func (d Difficulty) StartingFunds() int {
	switch d {
	case DifficultyEasy:
		return 600
	case DifficultyHard:
		return 400
	default:
		return 500
	}
}

// LogType classifies entries of the player-visible game log
type LogType string

const (
	LogInfo    LogType = "info"
	LogSuccess LogType = "success"
	LogWarning LogType = "warning"
	LogError   LogType = "error"
)

// LogEntry is one line of the game log
type LogEntry struct {
	ID        string        `json:"id"`
	GameDate  calendar.Date `json:"game_date"`
	Timestamp time.Time     `json:"timestamp"`
	Message   string        `json:"message"`
	Type      LogType       `json:"type"`
}

// Counters hands out per-game sequential ids
type Counters struct {
	Employee int `json:"employee"`
	Task     int `json:"task"`
	Order    int `json:"order"`
	Mission  int `json:"mission"`
	Event    int `json:"event"`
}

// GameState is the aggregate root of one game session
type GameState struct {
	ID          string     `json:"game_id"`
	Name        string     `json:"game_name"`
	CompanyName string     `json:"company_name,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`

	Date       calendar.Date `json:"date"`
	Treasury   int           `json:"treasury"`
	Reputation int           `json:"reputation"`

	Fuel       int            `json:"fuel"`
	FuelMax    int            `json:"fuel_max"`
	Storage    int            `json:"storage"`
	StorageMax int            `json:"storage_max"`
	Cargo      map[string]int `json:"cargo"`
	Passengers int            `json:"passengers"`

	ShipModel         string `json:"ship_model"`
	ShipName          string `json:"ship_name,omitempty"`
	PassengerCapacity int    `json:"passenger_capacity"`

	Area                        int      `json:"area,omitempty"`
	WorldDensity                string   `json:"world_density,omitempty"`
	ShipRow                     int      `json:"ship_row,omitempty"`
	ShipCol                     int      `json:"ship_col,omitempty"`
	CurrentPlanetCode           int      `json:"current_planet_code,omitempty"`
	PassengerTransportAvailable bool     `json:"passenger_transport_available"`
	ExploredQuadrants           []string `json:"explored_quadrants,omitempty"`

	Personnel    []Employee       `json:"personnel"`
	Tasks        []Task           `json:"tasks"`
	Missions     []Mission        `json:"missions"`
	Orders       []TradeOrder     `json:"trade_orders"`
	Events       []Event          `json:"event_queue"`
	Transactions []Transaction    `json:"transactions"`
	DiceRolls    []DiceRollRecord `json:"dice_rolls"`
	Logs         []LogEntry       `json:"event_logs"`
	Counters     Counters         `json:"counters"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameSummary is the listing view of a game
type GameSummary struct {
	ID         string        `json:"game_id"`
	Name       string        `json:"game_name"`
	Date       calendar.Date `json:"date"`
	Treasury   int           `json:"treasury"`
	Reputation int           `json:"reputation"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Summary returns the listing view of the state
func (g *GameState) Summary() GameSummary {
	return GameSummary{
		ID:         g.ID,
		Name:       g.Name,
		Date:       g.Date,
		Treasury:   g.Treasury,
		Reputation: g.Reputation,
		UpdatedAt:  g.UpdatedAt,
	}
}

// SetReputation stores v clamped to the allowed range
func (g *GameState) SetReputation(v int) {
	g.Reputation = min(max(v, ReputationMin), ReputationMax)
}

// NewEvent stamps a new event with the next sequence id
func (g *GameState) NewEvent(date calendar.Date, payload EventPayload) Event {
	g.Counters.Event++
	return Event{ID: g.Counters.Event, Date: date, Payload: payload}
}

// NextEmployeeID reserves an employee id
func (g *GameState) NextEmployeeID() int {
	g.Counters.Employee++
	return g.Counters.Employee
}

// NextTaskID reserves a task id
func (g *GameState) NextTaskID() int {
	g.Counters.Task++
	return g.Counters.Task
}

// NextOrderID reserves a trade order id
func (g *GameState) NextOrderID() int {
	g.Counters.Order++
	return g.Counters.Order
}

// NextMissionID reserves a mission id
func (g *GameState) NextMissionID() int {
	g.Counters.Mission++
	return g.Counters.Mission
}

// Employee returns the employee with the given id
func (g *GameState) Employee(id int) (*Employee, bool) {
	for i := range g.Personnel {
		if g.Personnel[i].ID == id {
			return &g.Personnel[i], true
		}
	}
	return nil, false
}

// ActivePersonnel returns copies of all active employees
func (g *GameState) ActivePersonnel() []Employee {
	var out []Employee
	for _, e := range g.Personnel {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

// ActiveByPosition returns pointers to active employees holding position
func (g *GameState) ActiveByPosition(position string) []*Employee {
	var out []*Employee
	for i := range g.Personnel {
		if g.Personnel[i].Active && g.Personnel[i].Position == position {
			out = append(out, &g.Personnel[i])
		}
	}
	return out
}

// FirstActive returns the first active employee holding position
func (g *GameState) FirstActive(position string) (*Employee, bool) {
	found := g.ActiveByPosition(position)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// MonthlySalaries sums the salaries of active employees
func (g *GameState) MonthlySalaries() int {
	total := 0
	for _, e := range g.Personnel {
		if e.Active {
			total += e.MonthlySalary
		}
	}
	return total
}

// Task returns the task with the given id
func (g *GameState) Task(id int) (*Task, bool) {
	for i := range g.Tasks {
		if g.Tasks[i].ID == id {
			return &g.Tasks[i], true
		}
	}
	return nil, false
}

// Order returns the trade order with the given id
func (g *GameState) Order(id int) (*TradeOrder, bool) {
	for i := range g.Orders {
		if g.Orders[i].ID == id {
			return &g.Orders[i], true
		}
	}
	return nil, false
}

// Mission returns the mission with the given id
func (g *GameState) Mission(id int) (*Mission, bool) {
	for i := range g.Missions {
		if g.Missions[i].ID == id {
			return &g.Missions[i], true
		}
	}
	return nil, false
}

// ListFilters pages through stored games
type ListFilters struct {
	Limit  int
	Offset int
}
