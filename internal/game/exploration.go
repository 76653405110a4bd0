package game

import (
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// planetCodes is how many codes the 3d6 sequence holds.
const planetCodes = 6 * 6 * 6

// StartCheck tells whether a planet can be a starting world.
type StartCheck struct {
	Valid  bool            `json:"is_valid"`
	Checks map[string]bool `json:"checks"`
}

// StartingPlanetCheck applies the starting-world rules: a large population,
// a tech level above RUD, the Spacegom agreement and something to trade.
func StartingPlanetCheck(p *models.Planet) StartCheck {
	checks := map[string]bool{
		"population":  p.PopulationOver1000,
		"tech_level":  p.TechLevel != "" && p.TechLevel != "PR" && p.TechLevel != "RUD",
		"agreement":   p.SpacegomAgreement,
		"has_product": len(p.Products) > 0,
	}
	valid := true
	for _, ok := range checks {
		valid = valid && ok
	}
	return StartCheck{Valid: valid, Checks: checks}
}

// PlanetLookup is a planet found by code, with its starting-world check.
type PlanetLookup struct {
	Code   int            `json:"code"`
	Planet *models.Planet `json:"planet"`
	Start  StartCheck     `json:"start_check"`
}

// PlanetCodeRoll is the outcome of a 3d6 planet code roll. Planet is nil
// when the catalog has no world with that code.
type PlanetCodeRoll struct {
	Code   int            `json:"code"`
	Dice   []int          `json:"dice"`
	Manual bool           `json:"is_manual"`
	Planet *models.Planet `json:"planet"`
	Start  *StartCheck    `json:"start_check,omitempty"`
}

// RollPlanetCode rolls 3d6 into a planet code and looks the planet up.
func (e *Engine) RollPlanetCode(g *models.GameState, manual []int) (PlanetCodeRoll, error) {
	code, roll, err := e.roller.RollPlanetCode(manual)
	if err != nil {
		return PlanetCodeRoll{}, err
	}
	e.recordRoll(g, roll, "planet code")

	res := PlanetCodeRoll{Code: code, Dice: roll.Dice, Manual: roll.Manual}
	if p, ok := e.catalog.Planet(code); ok {
		check := StartingPlanetCheck(p)
		res.Planet, res.Start = p, &check
		e.logf(g, models.LogInfo, "Planet code %d rolled (%s): %s", code, dice.Format(roll.Dice), p.Name)
	} else {
		e.logf(g, models.LogWarning, "Planet code %d rolled (%s): not in the catalog", code, dice.Format(roll.Dice))
	}
	return res, nil
}

// NextPlanet walks the code sequence after code and returns the first world
// the catalog knows.
func (e *Engine) NextPlanet(code int) (PlanetLookup, error) {
	next := code
	for i := 0; i < planetCodes; i++ {
		var err error
		next, err = dice.NextPlanetCodeInSequence(next)
		if err != nil {
			return PlanetLookup{}, err
		}
		if p, ok := e.catalog.Planet(next); ok {
			return PlanetLookup{Code: next, Planet: p, Start: StartingPlanetCheck(p)}, nil
		}
	}
	return PlanetLookup{}, gameerr.NotFound("no catalog planet follows %d", code)
}

// AreaDensity is the world density roll of an area.
type AreaDensity struct {
	Area    int    `json:"area"`
	Dice    []int  `json:"dice"`
	Total   int    `json:"total"`
	Manual  bool   `json:"is_manual"`
	Density string `json:"world_density"`
}

// ExploreArea rolls 2d6 for the world density of the current area.
func (e *Engine) ExploreArea(g *models.GameState, manual []int) (AreaDensity, error) {
	roll, err := e.roller.Resolve(manual, 2, dice.DefaultSides)
	if err != nil {
		return AreaDensity{}, err
	}
	e.recordRoll(g, roll, "world density")

	g.WorldDensity = dice.WorldDensity(roll.Total)
	e.logf(g, models.LogInfo, "Area %d has %s world density (%s)", g.Area, g.WorldDensity, dice.Format(roll.Dice))
	return AreaDensity{
		Area:    g.Area,
		Dice:    roll.Dice,
		Total:   roll.Total,
		Manual:  roll.Manual,
		Density: g.WorldDensity,
	}, nil
}
