package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

func TestRollPlanetCode(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)
	rolls := len(g.DiceRolls)

	res, err := e.RollPlanetCode(g, []int{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, homeworld, res.Code)
	assert.True(t, res.Manual)
	require.NotNil(t, res.Planet)
	assert.Equal(t, "Aldebaran", res.Planet.Name)
	require.NotNil(t, res.Start)
	assert.False(t, res.Start.Valid)
	assert.True(t, res.Start.Checks["tech_level"])
	assert.False(t, res.Start.Checks["population"])
	assert.Len(t, g.DiceRolls, rolls+1)

	res, err = e.RollPlanetCode(g, []int{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 222, res.Code)
	assert.Nil(t, res.Planet)
	assert.Nil(t, res.Start)

	_, err = e.RollPlanetCode(g, []int{7, 1, 1})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	_, err = e.RollPlanetCode(g, []int{1, 1})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.Len(t, g.DiceRolls, rolls+2)
}

func TestStartingPlanetCheck(t *testing.T) {
	p := &models.Planet{TechLevel: "POL", PopulationOver1000: true, SpacegomAgreement: true, Products: []string{"INDU"}}
	assert.True(t, StartingPlanetCheck(p).Valid)

	p.TechLevel = "RUD"
	check := StartingPlanetCheck(p)
	assert.False(t, check.Valid)
	assert.False(t, check.Checks["tech_level"])
}

func TestNextPlanet(t *testing.T) {
	e := newEngine(t)

	next, err := e.NextPlanet(homeworld)
	require.NoError(t, err)
	assert.Equal(t, farmworld, next.Code)
	assert.Equal(t, "Meadowfar", next.Planet.Name)

	next, err = e.NextPlanet(backwater)
	require.NoError(t, err)
	assert.Equal(t, homeworld, next.Code, "wraps past 666")

	_, err = e.NextPlanet(700)
	assert.ErrorIs(t, err, gameerr.ErrValidation)

	empty := NewEngine(&stubCatalog{}, stubNames{})
	_, err = empty.NextPlanet(homeworld)
	assert.ErrorIs(t, err, gameerr.ErrNotFound)
}

func TestExploreArea(t *testing.T) {
	e := newEngine(t, 6)
	g := newGame(t, e)

	res, err := e.ExploreArea(g, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)
	assert.Equal(t, "High", res.Density)
	assert.Equal(t, "High", g.WorldDensity)

	res, err = e.ExploreArea(g, []int{1, 2})
	require.NoError(t, err)
	assert.True(t, res.Manual)
	assert.Equal(t, "Low", g.WorldDensity)

	_, err = e.ExploreArea(g, []int{0, 1})
	assert.ErrorIs(t, err, gameerr.ErrValidation)
	assert.Equal(t, "Low", g.WorldDensity)
}

func TestUpcomingEvents(t *testing.T) {
	e := newEngine(t)
	g := newGame(t, e)

	all, err := UpcomingEvents(g, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	salaries, err := UpcomingEvents(g, "salary_payment")
	require.NoError(t, err)
	assert.Len(t, salaries, 1)

	none, err := UpcomingEvents(g, "task_completion")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = UpcomingEvents(g, "meteor_shower")
	assert.ErrorIs(t, err, gameerr.ErrValidation)
}
