package models

// Planet is the reference data of one world, keyed by its 111-666 code
type Planet struct {
	Code               int      `json:"code" yaml:"code"`
	Name               string   `json:"name" yaml:"name"`
	TechLevel          string   `json:"tech_level" yaml:"tech_level"`
	AvgPassengers      int      `json:"avg_passengers" yaml:"avg_passengers"`
	UCNPerOrder        int      `json:"ucn_per_order" yaml:"ucn_per_order"`
	Products           []string `json:"products" yaml:"products"`
	Spaceport          string   `json:"spaceport,omitempty" yaml:"spaceport"`
	OrbitalFacilities  []string `json:"orbital_facilities,omitempty" yaml:"orbital_facilities"`
	PopulationOver1000 bool     `json:"population_over_1000" yaml:"population_over_1000"`
	SpacegomAgreement  bool     `json:"spacegom_agreement" yaml:"spacegom_agreement"`
	Custom             bool     `json:"is_custom" yaml:"-"`
}

// Produces reports whether the planet produces the product code
func (p *Planet) Produces(code string) bool {
	for _, c := range p.Products {
		if c == code {
			return true
		}
	}
	return false
}

// Position is one entry of the job catalog
type Position struct {
	Name           string `json:"name" yaml:"name"`
	TechLevel      string `json:"tech_level" yaml:"tech_level"`
	SearchTimeDice string `json:"search_time_dice" yaml:"search_time_dice"`
	BaseSalary     int    `json:"base_salary" yaml:"base_salary"`
	HireThreshold  int    `json:"hire_threshold" yaml:"hire_threshold"`
}

// ShipModel describes a purchasable ship
type ShipModel struct {
	Name       string `json:"name" yaml:"name"`
	Jump       int    `json:"jump" yaml:"jump"`
	Passengers int    `json:"passengers" yaml:"passengers"`
	Storage    int    `json:"storage" yaml:"storage"`
	Cost       int    `json:"cost" yaml:"cost"`
}

// FuelMax returns the fuel capacity derived from jump range
func (s ShipModel) FuelMax() int {
	return s.Jump * 30
}

// CrewMember describes a member of the starting crew
type CrewMember struct {
	Position   string `json:"position" yaml:"position"`
	Name       string `json:"name" yaml:"name"`
	Salary     int    `json:"salary" yaml:"salary"`
	Experience string `json:"experience" yaml:"experience"`
	Morale     string `json:"morale" yaml:"morale"`
}
