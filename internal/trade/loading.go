package trade

import (
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/models"
	"github.com/terra-clan/spacegom-engine/internal/resolution"
)

// Loading rates in UCN per day.
const (
	BaseLoadingRate = 5
	FastLoadingRate = 10
)

// OperatorRoll records one logistics operator's contribution.
type OperatorRoll struct {
	EmployeeID int    `json:"employee_id"`
	Name       string `json:"name"`
	Dice       []int  `json:"dice"`
	Total      int    `json:"total"`
	Rate       int    `json:"rate"`
}

// LoadingRate rolls 2d6 plus modifiers for every operator: 7 or more loads
// 10 UCN a day, less loads 5. With no operators the base rate applies.
func LoadingRate(r *dice.Roller, operators []models.Employee) (int, []OperatorRoll) {
	if len(operators) == 0 {
		return BaseLoadingRate, nil
	}

	rate := 0
	rolls := make([]OperatorRoll, 0, len(operators))
	for _, op := range operators {
		values := r.Roll(2, dice.DefaultSides)
		total := dice.Sum(values) + resolution.ExperienceModifier(op.Experience) + resolution.MoraleModifier(op.Morale)
		opRate := BaseLoadingRate
		if total >= 7 {
			opRate = FastLoadingRate
		}
		rate += opRate
		rolls = append(rolls, OperatorRoll{EmployeeID: op.ID, Name: op.Name, Dice: values, Total: total, Rate: opRate})
	}
	return rate, rolls
}

// LoadingDays is the number of days needed to load totalUCN at rate.
func LoadingDays(totalUCN, rate int) int {
	if totalUCN <= 0 {
		return 0
	}
	if rate <= 0 {
		rate = BaseLoadingRate
	}
	return (totalUCN + rate - 1) / rate
}
