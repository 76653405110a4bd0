package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// catalogFile is the on-disk layout; any section may be omitted
type catalogFile struct {
	Planets   []models.Planet     `yaml:"planets"`
	Positions []models.Position   `yaml:"positions"`
	Ships     []models.ShipModel  `yaml:"ships"`
	Crew      []models.CrewMember `yaml:"crew"`
}

// Loader manages loading and caching of reference data
type Loader struct {
	mu        sync.RWMutex
	planets   map[int]*models.Planet
	positions map[string]*models.Position
	ships     map[string]*models.ShipModel
	crew      []models.CrewMember
}

// NewLoader creates a loader seeded with the built-in ships and crew
func NewLoader() *Loader {
	l := &Loader{
		planets:   make(map[int]*models.Planet),
		positions: make(map[string]*models.Position),
		ships:     make(map[string]*models.ShipModel),
		crew:      append([]models.CrewMember(nil), defaultCrew...),
	}
	for i := range defaultShips {
		ship := defaultShips[i]
		l.ships[ship.Name] = &ship
	}
	return l
}

// LoadFromDir loads all YAML files from a directory
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading catalog from directory", "dir", dir)

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to stat catalog dir: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	loaded := 0
	for _, file := range files {
		if err := l.LoadFromFile(file); err != nil {
			slog.Warn("failed to load catalog file", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("catalog loaded",
		"files", loaded,
		"total_files", len(files),
		"planets", len(l.ListPlanets()),
		"positions", len(l.ListPositions()),
		"ships", len(l.ListShips()),
	)
	return nil
}

// LoadFromFile loads one YAML file. The file is validated as a whole before
// any entry is stored.
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range file.Planets {
		if err := validatePlanet(&file.Planets[i]); err != nil {
			return fmt.Errorf("planet %d: %w", i+1, err)
		}
	}
	for i := range file.Positions {
		if err := validatePosition(&file.Positions[i]); err != nil {
			return fmt.Errorf("position %d: %w", i+1, err)
		}
	}
	for i := range file.Ships {
		if file.Ships[i].Name == "" {
			return fmt.Errorf("ship %d: name is required", i+1)
		}
	}
	for i := range file.Crew {
		if err := validateCrew(&file.Crew[i]); err != nil {
			return fmt.Errorf("crew member %d: %w", i+1, err)
		}
	}

	l.mu.Lock()
	for i := range file.Planets {
		p := file.Planets[i]
		l.planets[p.Code] = &p
	}
	for i := range file.Positions {
		p := file.Positions[i]
		l.positions[p.Name] = &p
	}
	for i := range file.Ships {
		s := file.Ships[i]
		l.ships[s.Name] = &s
	}
	if len(file.Crew) > 0 {
		l.crew = append([]models.CrewMember(nil), file.Crew...)
	}
	l.mu.Unlock()

	slog.Info("catalog file loaded",
		"file", filepath.Base(path),
		"planets", len(file.Planets),
		"positions", len(file.Positions),
		"ships", len(file.Ships),
		"crew", len(file.Crew),
	)
	return nil
}

func validatePlanet(p *models.Planet) error {
	if _, _, _, err := dice.PlanetCodeDigits(p.Code); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.TechLevel != "" && TechRank(p.TechLevel) < 0 {
		return fmt.Errorf("unknown tech level %q", p.TechLevel)
	}
	if p.AvgPassengers < 0 || p.UCNPerOrder < 0 {
		return fmt.Errorf("passenger and UCN values must be non-negative")
	}
	return nil
}

func validatePosition(p *models.Position) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.SearchTimeDice == "" {
		return fmt.Errorf("search_time_dice is required")
	}
	if _, err := dice.ParseNotation(p.SearchTimeDice); err != nil {
		return err
	}
	if p.TechLevel != "" && TechRank(p.TechLevel) < 0 {
		return fmt.Errorf("unknown tech level %q", p.TechLevel)
	}
	if p.BaseSalary < 0 {
		return fmt.Errorf("base_salary must be non-negative")
	}

	// Apply defaults
	if p.HireThreshold == 0 {
		p.HireThreshold = 7
	}
	return nil
}

func validateCrew(c *models.CrewMember) error {
	if c.Position == "" || c.Name == "" {
		return fmt.Errorf("position and name are required")
	}
	if _, err := models.ParseExperience(c.Experience); err != nil {
		return err
	}
	if _, err := models.ParseMorale(c.Morale); err != nil {
		return err
	}
	return nil
}

// Planet returns a planet by code
func (l *Loader) Planet(code int) (*models.Planet, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.planets[code]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// ListPlanets returns all planets ordered by code
func (l *Loader) ListPlanets() []models.Planet {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Planet, 0, len(l.planets))
	for _, p := range l.planets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// AddPlanet registers a custom planet created during play
func (l *Loader) AddPlanet(p models.Planet) error {
	if err := validatePlanet(&p); err != nil {
		if errors.Is(err, gameerr.ErrValidation) {
			return err
		}
		return gameerr.Validation("planet %d: %v", p.Code, err)
	}
	p.Custom = true

	l.mu.Lock()
	defer l.mu.Unlock()
	l.planets[p.Code] = &p
	return nil
}

// Position returns a job by name
func (l *Loader) Position(name string) (*models.Position, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.positions[name]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// ListPositions returns all jobs ordered by name
func (l *Loader) ListPositions() []models.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AvailablePositions returns the jobs that can be recruited at planet
func (l *Loader) AvailablePositions(planet *models.Planet) []models.Position {
	var out []models.Position
	for _, p := range l.ListPositions() {
		if PositionAvailable(&p, planet) {
			out = append(out, p)
		}
	}
	return out
}

// Ship returns a ship model by name, falling back to the basic model
func (l *Loader) Ship(name string) models.ShipModel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if s, ok := l.ships[name]; ok {
		return *s
	}
	if s, ok := l.ships[DefaultShip]; ok {
		return *s
	}
	return defaultShips[0]
}

// ListShips returns all ship models ordered by cost
func (l *Loader) ListShips() []models.ShipModel {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.ShipModel, 0, len(l.ships))
	for _, s := range l.ships {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Crew returns the starting crew
func (l *Loader) Crew() []models.CrewMember {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.CrewMember(nil), l.crew...)
}
