package dice

import "github.com/terra-clan/spacegom-engine/internal/gameerr"

const (
	FirstPlanetCode = 111
	LastPlanetCode  = 666
)

// PlanetCodeFromDigits concatenates three d6 results into a planet code.
func PlanetCodeFromDigits(d1, d2, d3 int) (int, error) {
	if err := Validate([]int{d1, d2, d3}, 3, DefaultSides); err != nil {
		return 0, err
	}
	return d1*100 + d2*10 + d3, nil
}

// PlanetCodeDigits splits a planet code into its three digits.
func PlanetCodeDigits(code int) (int, int, int, error) {
	d1, d2, d3 := code/100, (code/10)%10, code%10
	if code < FirstPlanetCode || code > LastPlanetCode {
		return 0, 0, 0, gameerr.Validation("planet code %d out of range", code)
	}
	if err := Validate([]int{d1, d2, d3}, 3, DefaultSides); err != nil {
		return 0, 0, 0, gameerr.Validation("planet code %d has invalid digit", code)
	}
	return d1, d2, d3, nil
}

// NextPlanetCodeInSequence steps a code like a three-digit odometer whose
// digits run 1..6. 666 wraps to 111.
func NextPlanetCodeInSequence(code int) (int, error) {
	d1, d2, d3, err := PlanetCodeDigits(code)
	if err != nil {
		return 0, err
	}

	d3++
	if d3 > DefaultSides {
		d3 = 1
		d2++
	}
	if d2 > DefaultSides {
		d2 = 1
		d1++
	}
	if d1 > DefaultSides {
		return FirstPlanetCode, nil
	}
	return d1*100 + d2*10 + d3, nil
}

// RollPlanetCode rolls (or accepts) three dice and returns the planet code.
func (r *Roller) RollPlanetCode(manual []int) (int, Roll, error) {
	roll, err := r.Resolve(manual, 3, DefaultSides)
	if err != nil {
		return 0, Roll{}, err
	}
	code, err := PlanetCodeFromDigits(roll.Dice[0], roll.Dice[1], roll.Dice[2])
	if err != nil {
		return 0, Roll{}, err
	}
	return code, roll, nil
}
