package resolution

import (
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// HireInput carries what a hiring resolution reads.
type HireInput struct {
	Threshold  int
	Reputation int
	// Actor is the employee running the search; nil means no modifiers.
	Actor *models.Employee
	Roll  dice.Roll
}

// ResolveHire rolls the search outcome against the task threshold. The full
// reputation value is added. The actor's morale and experience evolve with
// the roll whatever the outcome. Creating the hired employee is left to the
// caller, which fills EmployeeID on success.
func ResolveHire(in HireInput) models.HireResult {
	mods := models.Modifiers{Reputation: in.Reputation}
	if in.Actor != nil {
		mods.Experience = ExperienceModifier(in.Actor.Experience)
		mods.Morale = MoraleModifier(in.Actor.Morale)
	}
	mods.Total = mods.Experience + mods.Morale + mods.Reputation

	total := in.Roll.Total + mods.Total
	result := models.HireResult{
		Dice:      append([]int(nil), in.Roll.Dice...),
		Roll:      in.Roll.Total,
		Manual:    in.Roll.Manual,
		Modifiers: mods,
		Total:     total,
		Threshold: in.Threshold,
		Success:   total >= in.Threshold,
	}

	if in.Actor != nil {
		result.ActorChange = Evolve(in.Actor, in.Roll, total)
	}
	return result
}
