package models

import (
	"strings"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// Well-known positions the engine looks up by name.
const (
	PositionDirector          = "Director gerente"
	PositionPassengerManager  = "Responsable de soporte a pasajeros"
	PositionFlightAttendant   = "Auxiliar de vuelo"
	PositionLogisticsOperator = "Operario de logística y almacén"
)

// Experience is the ordered experience tier of an employee.
type Experience string

const (
	ExperienceNovice  Experience = "Novice"
	ExperienceExpert  Experience = "Expert"
	ExperienceVeteran Experience = "Veteran"
)

var experienceLevels = []Experience{ExperienceNovice, ExperienceExpert, ExperienceVeteran}

// ParseExperience accepts the tier names (Standard is an alias for Expert)
// and their one-letter codes.
func ParseExperience(s string) (Experience, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "novice", "n":
		return ExperienceNovice, nil
	case "expert", "standard", "e", "s":
		return ExperienceExpert, nil
	case "veteran", "v":
		return ExperienceVeteran, nil
	default:
		return "", gameerr.Validation("invalid experience tier %q", s)
	}
}

// Rank returns the zero-based position on the scale.
func (e Experience) Rank() int {
	for i, lvl := range experienceLevels {
		if lvl == e {
			return i
		}
	}
	return 0
}

// Promote returns the next tier up, clamped at Veteran.
func (e Experience) Promote() Experience {
	return experienceLevels[min(e.Rank()+1, len(experienceLevels)-1)]
}

// Demote returns the next tier down, clamped at Novice.
func (e Experience) Demote() Experience {
	return experienceLevels[max(e.Rank()-1, 0)]
}

// Morale is the ordered morale band of an employee.
type Morale string

const (
	MoraleLow    Morale = "Low"
	MoraleMedium Morale = "Medium"
	MoraleHigh   Morale = "High"
)

var moraleLevels = []Morale{MoraleLow, MoraleMedium, MoraleHigh}

// ParseMorale accepts band names and one-letter codes.
func ParseMorale(s string) (Morale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l", "b":
		return MoraleLow, nil
	case "medium", "m":
		return MoraleMedium, nil
	case "high", "h", "a":
		return MoraleHigh, nil
	default:
		return "", gameerr.Validation("invalid morale %q", s)
	}
}

// Rank returns the zero-based position on the scale.
func (m Morale) Rank() int {
	for i, lvl := range moraleLevels {
		if lvl == m {
			return i
		}
	}
	return 1
}

// Raise returns the next band up, clamped at High.
func (m Morale) Raise() Morale {
	return moraleLevels[min(m.Rank()+1, len(moraleLevels)-1)]
}

// Lower returns the next band down, clamped at Low.
func (m Morale) Lower() Morale {
	return moraleLevels[max(m.Rank()-1, 0)]
}

// Employee is a crew member of the company.
type Employee struct {
	ID            int           `json:"id"`
	Position      string        `json:"position"`
	Name          string        `json:"name"`
	MonthlySalary int           `json:"monthly_salary"`
	Experience    Experience    `json:"experience"`
	Morale        Morale        `json:"morale"`
	HireDate      calendar.Date `json:"hire_date"`
	Active        bool          `json:"is_active"`
	Notes         string        `json:"notes,omitempty"`
}

// StatChange records how a roll moved an employee's morale and experience.
type StatChange struct {
	MoraleChange     int        `json:"moral_change"`
	ExperienceChange int        `json:"xp_change"`
	OldMorale        Morale     `json:"old_moral"`
	NewMorale        Morale     `json:"new_moral"`
	OldExperience    Experience `json:"old_xp"`
	NewExperience    Experience `json:"new_xp"`
	Messages         []string   `json:"messages,omitempty"`
}
