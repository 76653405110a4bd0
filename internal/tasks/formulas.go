package tasks

import (
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// SearchDays evaluates a search-time formula ("2d6" or a fixed number) and
// scales it by tier: Novice halves rounding up, Veteran doubles. The result
// is at least one day.
func SearchDays(formula string, tier models.Experience, roller *dice.Roller, manual []int) (int, dice.Roll, error) {
	notation, err := dice.ParseNotation(formula)
	if err != nil {
		return 0, dice.Roll{}, err
	}
	roll, err := notation.Evaluate(roller, manual)
	if err != nil {
		return 0, dice.Roll{}, err
	}
	return max(scale(roll.Total, tier), 1), roll, nil
}

// Salary scales a base salary by tier, rounding up for Novice.
func Salary(base int, tier models.Experience) int {
	return scale(base, tier)
}

func scale(v int, tier models.Experience) int {
	switch tier {
	case models.ExperienceNovice:
		return (v + 1) / 2
	case models.ExperienceVeteran:
		return v * 2
	default:
		return v
	}
}
