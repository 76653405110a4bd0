package game

import (
	"strings"

	"github.com/google/uuid"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/events"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Starting ship levels when the model does not say otherwise.
const (
	StartingFuel    = 18
	StartingStorage = 16
)

// NewGameParams describes a game to create.
type NewGameParams struct {
	Name        string `json:"game_name"`
	CompanyName string `json:"company_name,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	ShipModel   string `json:"ship_model,omitempty"`
	ShipName    string `json:"ship_name,omitempty"`
	PlanetCode  int    `json:"planet_code,omitempty"`
	Area        int    `json:"area,omitempty"`
}

// NewGame builds a fresh game on day 1-01-01 with the starting crew and the
// first salary payment scheduled.
func (e *Engine) NewGame(p NewGameParams) (*models.GameState, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, gameerr.Validation("game name is required")
	}
	difficulty, err := models.ParseDifficulty(p.Difficulty)
	if err != nil {
		return nil, err
	}
	if p.Area < 0 {
		return nil, gameerr.Validation("area must be non-negative, got %d", p.Area)
	}

	var planet *models.Planet
	if p.PlanetCode != 0 {
		found, ok := e.catalog.Planet(p.PlanetCode)
		if !ok {
			return nil, gameerr.NotFound("planet %d", p.PlanetCode)
		}
		planet = found
	}

	crew := e.catalog.Crew()
	personnel := make([]models.Employee, 0, len(crew))
	for _, c := range crew {
		exp, err := models.ParseExperience(c.Experience)
		if err != nil {
			return nil, err
		}
		morale, err := models.ParseMorale(c.Morale)
		if err != nil {
			return nil, err
		}
		personnel = append(personnel, models.Employee{
			Position:      c.Position,
			Name:          c.Name,
			MonthlySalary: c.Salary,
			Experience:    exp,
			Morale:        morale,
			HireDate:      calendar.Start,
			Active:        true,
		})
	}

	ship := e.catalog.Ship(p.ShipModel)
	now := e.now().UTC()
	g := &models.GameState{
		ID:                uuid.NewString(),
		Name:              name,
		CompanyName:       p.CompanyName,
		Difficulty:        difficulty,
		Date:              calendar.Start,
		Treasury:          difficulty.StartingFunds(),
		FuelMax:           ship.FuelMax(),
		StorageMax:        ship.Storage,
		Cargo:             make(map[string]int),
		ShipModel:         ship.Name,
		ShipName:          p.ShipName,
		PassengerCapacity: ship.Passengers,
		Area:              p.Area,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	g.Fuel = min(StartingFuel, g.FuelMax)
	g.Storage = min(StartingStorage, g.StorageMax)
	if g.CompanyName == "" {
		g.CompanyName = e.names.Company()
	}
	if g.ShipName == "" {
		g.ShipName = e.names.Ship()
	}
	if planet != nil {
		g.CurrentPlanetCode = planet.Code
		g.PassengerTransportAvailable = true
	}

	for _, emp := range personnel {
		emp.ID = g.NextEmployeeID()
		g.Personnel = append(g.Personnel, emp)
	}

	g.Events = events.Add(g.Events, g.NewEvent(calendar.NextDay35(g.Date), models.SalaryPaymentPayload{}))

	e.logf(g, models.LogInfo, "Game %q started for %s aboard the %s (%s)", g.Name, g.CompanyName, g.ShipName, g.ShipModel)
	if planet != nil {
		e.logf(g, models.LogInfo, "Docked at %s (%d)", planet.Name, planet.Code)
	}
	return g, nil
}
