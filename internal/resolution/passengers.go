package resolution

import (
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// Revenue adjustment per attendant by tier.
const attendantTierBonus = 5

// PassengerInput carries what a passenger transport resolution reads.
type PassengerInput struct {
	AvgPassengers int
	Capacity      int
	Reputation    int
	Manager       *models.Employee
	Attendants    []models.Employee
	Roll          dice.Roll
}

// PassengerResult is the audit of one boarding.
type PassengerResult struct {
	Dice              []int              `json:"dice"`
	Roll              int                `json:"dice_sum"`
	Manual            bool               `json:"is_manual"`
	Modifiers         models.Modifiers   `json:"modifiers"`
	Total             int                `json:"total"`
	Band              string             `json:"band"`
	Demand            int                `json:"demand"`
	Passengers        int                `json:"passengers"`
	Capped            bool               `json:"capped"`
	Multiplier        int                `json:"multiplier"`
	NoviceAttendants  int                `json:"novice_attendants"`
	VeteranAttendants int                `json:"veteran_attendants"`
	Revenue           int                `json:"revenue"`
	ManagerChange     *models.StatChange `json:"manager_change,omitempty"`
}

// ResolvePassengers rolls how many passengers board and what they pay.
// Modifiers apply only when a manager is present: experience, morale and
// half the reputation rounded down.
func ResolvePassengers(in PassengerInput) PassengerResult {
	var mods models.Modifiers
	if in.Manager != nil {
		mods.Experience = ExperienceModifier(in.Manager.Experience)
		mods.Morale = MoraleModifier(in.Manager.Morale)
		mods.Reputation = floorHalf(in.Reputation)
	}
	mods.Total = mods.Experience + mods.Morale + mods.Reputation
	total := in.Roll.Total + mods.Total

	res := PassengerResult{
		Dice:      append([]int(nil), in.Roll.Dice...),
		Roll:      in.Roll.Total,
		Manual:    in.Roll.Manual,
		Modifiers: mods,
		Total:     total,
	}

	switch {
	case total < 7:
		res.Band = "low"
		res.Demand = in.AvgPassengers / 2
	case total <= 9:
		res.Band = "normal"
		res.Demand = in.AvgPassengers
	default:
		res.Band = "high"
		res.Demand = in.AvgPassengers * 2
	}

	res.Passengers = res.Demand
	if res.Passengers > in.Capacity {
		res.Passengers = max(in.Capacity, 0)
		res.Capped = true
	}

	res.Multiplier = AttendantMultiplier(len(in.Attendants))
	for _, a := range in.Attendants {
		switch a.Experience {
		case models.ExperienceNovice:
			res.NoviceAttendants++
		case models.ExperienceVeteran:
			res.VeteranAttendants++
		}
	}
	revenue := res.Passengers*res.Multiplier -
		attendantTierBonus*res.NoviceAttendants +
		attendantTierBonus*res.VeteranAttendants
	res.Revenue = max(revenue, 0)

	if in.Manager != nil {
		change := Evolve(in.Manager, in.Roll, total)
		res.ManagerChange = &change
	}
	return res
}

// AttendantMultiplier is the fare multiplier for n flight attendants.
func AttendantMultiplier(n int) int {
	return min(max(n, 0), 3) + 1
}
