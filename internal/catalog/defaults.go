// Package catalog holds the read-only reference data of the game: planets,
// the job catalog, ship models and the starting crew.
package catalog

import "github.com/terra-clan/spacegom-engine/internal/models"

// DefaultShip is used when a game names an unknown model.
const DefaultShip = "Basic Starfall"

var defaultShips = []models.ShipModel{
	{Name: "Basic Starfall", Jump: 1, Passengers: 10, Storage: 40, Cost: 500},
	{Name: "Spacegom Fortune", Jump: 1, Passengers: 10, Storage: 70, Cost: 800},
	{Name: "Warehouse Ravana", Jump: 1, Passengers: 15, Storage: 100, Cost: 1200},
	{Name: "Long Explorer", Jump: 2, Passengers: 10, Storage: 80, Cost: 1400},
	{Name: "Space Challenger", Jump: 2, Passengers: 15, Storage: 100, Cost: 1800},
	{Name: "High Milkway", Jump: 2, Passengers: 25, Storage: 150, Cost: 2400},
	{Name: "Fast Paladin Store", Jump: 2, Passengers: 25, Storage: 200, Cost: 3000},
	{Name: "Tenacity triquadrant", Jump: 3, Passengers: 20, Storage: 120, Cost: 3300},
	{Name: "Defiant Navigator", Jump: 3, Passengers: 25, Storage: 250, Cost: 4000},
	{Name: "Space Glory", Jump: 4, Passengers: 50, Storage: 300, Cost: 5000},
}

var defaultCrew = []models.CrewMember{
	{Position: models.PositionDirector, Name: "Director", Salary: 10, Experience: "Expert", Morale: "Medium"},
	{Position: "Piloto", Name: "Pilot", Salary: 6, Experience: "Expert", Morale: "Medium"},
	{Position: "Ingeniero", Name: "Engineer", Salary: 5, Experience: "Expert", Morale: "Medium"},
}

// Tech levels from lowest to highest.
var techLevels = []string{"PR", "RUD", "ES", "INT", "POL", "N.S"}

// TechRank returns the position of level on the scale, or -1.
func TechRank(level string) int {
	for i, l := range techLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// PositionAvailable reports whether planet's tech level is high enough to
// recruit for the job. Jobs without a tech level are available everywhere.
func PositionAvailable(p *models.Position, planet *models.Planet) bool {
	if p.TechLevel == "" {
		return true
	}
	if planet == nil {
		return false
	}
	need, have := TechRank(p.TechLevel), TechRank(planet.TechLevel)
	return need >= 0 && have >= need
}
