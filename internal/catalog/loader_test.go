package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

func TestLoadCatalogFromDir(t *testing.T) {
	// Use the actual catalog directory
	catalogDir := filepath.Join("..", "..", "catalog")
	if _, err := os.Stat(catalogDir); os.IsNotExist(err) {
		t.Skip("catalog directory not found, skipping")
	}

	loader := NewLoader()
	require.NoError(t, loader.LoadFromDir(catalogDir))

	assert.GreaterOrEqual(t, len(loader.ListPlanets()), 3)
	assert.GreaterOrEqual(t, len(loader.ListPositions()), 5)
	assert.Len(t, loader.ListShips(), len(defaultShips))

	director, ok := loader.Position(models.PositionDirector)
	require.True(t, ok)
	assert.Equal(t, "2d6", director.SearchTimeDice)

	crew := loader.Crew()
	require.NotEmpty(t, crew)
	assert.Equal(t, models.PositionDirector, crew[0].Position)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.yaml", `
planets:
  - code: 234
    name: Kestrel
    tech_level: ES
    avg_passengers: 6
    ucn_per_order: 25
    products: [MICO]
positions:
  - name: Piloto
    tech_level: ES
    search_time_dice: 1d6
    base_salary: 6
`)

	loader := NewLoader()
	require.NoError(t, loader.LoadFromFile(path))

	p, ok := loader.Planet(234)
	require.True(t, ok)
	assert.Equal(t, "Kestrel", p.Name)
	assert.True(t, p.Produces("MICO"))

	pos, ok := loader.Position("Piloto")
	require.True(t, ok)
	assert.Equal(t, 7, pos.HireThreshold, "default threshold")

	_, ok = loader.Planet(111)
	assert.False(t, ok)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader()

	bad := writeFile(t, dir, "bad.yaml", `
planets:
  - code: 170
    name: Nowhere
`)
	assert.Error(t, loader.LoadFromFile(bad))

	badDice := writeFile(t, dir, "dice.yaml", `
positions:
  - name: Piloto
    search_time_dice: d6
`)
	assert.Error(t, loader.LoadFromFile(badDice))

	assert.Error(t, loader.LoadFromFile(writeFile(t, dir, "broken.yaml", "planets: [")))
	assert.Empty(t, loader.ListPlanets())
	assert.Empty(t, loader.ListPositions())
}

func TestLoadFromDirSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "planets:\n  - {code: 111, name: Alpha, tech_level: PR}\n")
	writeFile(t, dir, "b.yml", "planets:\n  - {code: 7, name: Broken}\n")
	writeFile(t, dir, "notes.txt", "ignored")

	loader := NewLoader()
	require.NoError(t, loader.LoadFromDir(dir))
	assert.Len(t, loader.ListPlanets(), 1)

	assert.Error(t, loader.LoadFromDir(filepath.Join(dir, "missing")))
}

func TestShipFallback(t *testing.T) {
	loader := NewLoader()

	glory := loader.Ship("Space Glory")
	assert.Equal(t, 4, glory.Jump)
	assert.Equal(t, 120, glory.FuelMax())

	unknown := loader.Ship("Millennium Hawk")
	assert.Equal(t, DefaultShip, unknown.Name)
	assert.Equal(t, 40, unknown.Storage)
}

func TestAvailablePositions(t *testing.T) {
	loader := NewLoader()
	dir := t.TempDir()
	require.NoError(t, loader.LoadFromFile(writeFile(t, dir, "jobs.yaml", `
positions:
  - {name: Ingeniero, tech_level: INT, search_time_dice: 2d6}
  - {name: Operario, tech_level: PR, search_time_dice: 1d6}
  - {name: Auxiliar de vuelo, search_time_dice: 1d6}
`)))

	names := func(ps []models.Position) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	primitive := &models.Planet{Code: 612, Name: "Dust", TechLevel: "PR"}
	assert.Equal(t, []string{"Auxiliar de vuelo", "Operario"}, names(loader.AvailablePositions(primitive)))

	advanced := &models.Planet{Code: 466, Name: "Forge", TechLevel: "POL"}
	assert.Len(t, loader.AvailablePositions(advanced), 3)

	superior := &models.Planet{Code: 111, Name: "Apex", TechLevel: "N.S"}
	assert.Len(t, loader.AvailablePositions(superior), 3)

	assert.Equal(t, []string{"Auxiliar de vuelo"}, names(loader.AvailablePositions(nil)))
}

func TestAddPlanet(t *testing.T) {
	loader := NewLoader()
	require.NoError(t, loader.AddPlanet(models.Planet{Code: 345, Name: "Custom", TechLevel: "ES"}))

	p, ok := loader.Planet(345)
	require.True(t, ok)
	assert.True(t, p.Custom)

	assert.Error(t, loader.AddPlanet(models.Planet{Code: 345, Name: "Bad", TechLevel: "XX"}))
	assert.Error(t, loader.AddPlanet(models.Planet{Code: 999, Name: "Off grid"}))
}
