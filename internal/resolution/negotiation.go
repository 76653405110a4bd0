package resolution

import (
	"github.com/shopspring/decimal"

	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// Action is the side of a trade being negotiated.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ParseAction validates a trade side.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBuy, ActionSell:
		return Action(s), nil
	default:
		return "", gameerr.Validation("action must be buy or sell, got %q", s)
	}
}

// Morale signals produced by a negotiation.
const (
	MoraleEffectLoss = "Loss"
	MoraleEffectNone = "None"
	MoraleEffectGain = "Gain"
)

var (
	favorableBuy    = decimal.RequireFromString("0.8")
	favorableSell   = decimal.RequireFromString("1.2")
	unfavorableBuy  = decimal.RequireFromString("1.2")
	unfavorableSell = decimal.RequireFromString("0.8")
)

// NegotiationModifiers is the bonus breakdown of a negotiation roll.
type NegotiationModifiers struct {
	Reputation int `json:"reputation"`
	Skill      int `json:"skill"`
}

// Negotiation is the outcome of a price negotiation. It never moves money.
type Negotiation struct {
	Action       Action               `json:"action"`
	Dice         []int                `json:"dice"`
	Roll         int                  `json:"roll"`
	Manual       bool                 `json:"is_manual"`
	Modifiers    NegotiationModifiers `json:"modifiers"`
	Total        int                  `json:"total"`
	Multiplier   decimal.Decimal      `json:"multiplier"`
	MoraleEffect string               `json:"moral_effect"`
	DaysConsumed int                  `json:"days_consumed"`
}

// Negotiate rolls 2d6 plus half the reputation rounded down. Buying takes
// one day; selling takes 1d6 days.
func Negotiate(r *dice.Roller, action Action, reputation int, manual []int) (Negotiation, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return Negotiation{}, err
	}
	roll, err := r.Resolve(manual, 2, dice.DefaultSides)
	if err != nil {
		return Negotiation{}, err
	}

	n := Negotiation{
		Action:    action,
		Dice:      roll.Dice,
		Roll:      roll.Total,
		Manual:    roll.Manual,
		Modifiers: NegotiationModifiers{Reputation: floorHalf(reputation)},
	}
	n.Total = n.Roll + n.Modifiers.Reputation + n.Modifiers.Skill

	switch {
	case n.Total < 7:
		n.MoraleEffect = MoraleEffectLoss
		n.Multiplier = pick(action, unfavorableBuy, unfavorableSell)
	case n.Total <= 9:
		n.MoraleEffect = MoraleEffectNone
		n.Multiplier = decimal.NewFromInt(1)
	default:
		n.MoraleEffect = MoraleEffectGain
		n.Multiplier = pick(action, favorableBuy, favorableSell)
	}

	if action == ActionBuy {
		n.DaysConsumed = 1
	} else {
		n.DaysConsumed = r.Roll(1, dice.DefaultSides)[0]
	}
	return n, nil
}

// NegotiatedPrice applies a multiplier to a list price, rounding half away
// from zero to whole credits.
func NegotiatedPrice(listPrice int, multiplier decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(listPrice)).Mul(multiplier).Round(0).IntPart())
}

func pick(action Action, buy, sell decimal.Decimal) decimal.Decimal {
	if action == ActionBuy {
		return buy
	}
	return sell
}
