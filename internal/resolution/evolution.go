// Package resolution computes the outcome of dice-based actions: hiring,
// passenger transport and trade negotiation.
package resolution

import (
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Thresholds of the morale evolution rule.
const (
	MoraleGainTotal = 10
	MoraleLossTotal = 4
)

// ExperienceModifier maps a tier to its roll bonus.
func ExperienceModifier(e models.Experience) int {
	switch e {
	case models.ExperienceNovice:
		return -1
	case models.ExperienceVeteran:
		return 1
	default:
		return 0
	}
}

// MoraleModifier maps a morale band to its roll bonus.
func MoraleModifier(m models.Morale) int {
	switch m {
	case models.MoraleLow:
		return -1
	case models.MoraleHigh:
		return 1
	default:
		return 0
	}
}

// EmployeeModifier is the experience plus morale bonus of e, or 0 for nil.
func EmployeeModifier(e *models.Employee) int {
	if e == nil {
		return 0
	}
	return ExperienceModifier(e.Experience) + MoraleModifier(e.Morale)
}

// Evolve applies the morale and experience rule to the employee who rolled:
// a total of 10 or more raises morale, 4 or less lowers it, and a natural
// double six raises experience. Scales are clamped.
func Evolve(e *models.Employee, roll dice.Roll, total int) models.StatChange {
	change := models.StatChange{
		OldMorale:     e.Morale,
		NewMorale:     e.Morale,
		OldExperience: e.Experience,
		NewExperience: e.Experience,
	}

	switch {
	case total <= MoraleLossTotal:
		if lowered := e.Morale.Lower(); lowered != e.Morale {
			change.MoraleChange = -1
			change.NewMorale = lowered
			change.Messages = append(change.Messages, "morale drops after a poor result (<= 4)")
		}
	case total >= MoraleGainTotal:
		if raised := e.Morale.Raise(); raised != e.Morale {
			change.MoraleChange = 1
			change.NewMorale = raised
			change.Messages = append(change.Messages, "morale rises after a great result (>= 10)")
		}
	}

	if roll.IsDouble(dice.DefaultSides) {
		if promoted := e.Experience.Promote(); promoted != e.Experience {
			change.ExperienceChange = 1
			change.NewExperience = promoted
			change.Messages = append(change.Messages, "experience rises after a natural double six")
		}
	}

	e.Morale = change.NewMorale
	e.Experience = change.NewExperience
	return change
}

// floorHalf divides by two rounding towards negative infinity.
func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}
