// Package dice provides random and manually supplied dice rolls.
package dice

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// DefaultSides is the face count of a standard die.
const DefaultSides = 6

// Source yields uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns the process-wide generator.
func DefaultSource() Source { return globalSource{} }

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Roll is one resolved throw.
type Roll struct {
	Dice   []int `json:"dice"`
	Total  int   `json:"total"`
	Manual bool  `json:"is_manual"`
}

// IsDouble reports whether the throw was exactly two dice both showing sides.
func (r Roll) IsDouble(sides int) bool {
	return len(r.Dice) == 2 && r.Dice[0] == sides && r.Dice[1] == sides
}

// Roller produces dice results from a Source.
type Roller struct {
	src Source
}

// NewRoller creates a roller backed by src. A nil src uses the process-wide
// generator.
func NewRoller(src Source) *Roller {
	if src == nil {
		src = globalSource{}
	}
	return &Roller{src: src}
}

// NewSeededRoller creates a reproducible roller safe for concurrent use.
func NewSeededRoller(seed uint64) *Roller {
	return NewRoller(&lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))})
}

// Roll throws n dice with the given number of sides, in generation order.
func (r *Roller) Roll(n, sides int) []int {
	if sides < 1 {
		sides = DefaultSides
	}
	results := make([]int, n)
	for i := range results {
		results[i] = r.src.IntN(sides) + 1
	}
	return results
}

// Resolve validates manual dice when supplied, otherwise rolls.
func (r *Roller) Resolve(manual []int, n, sides int) (Roll, error) {
	if len(manual) > 0 {
		if err := Validate(manual, n, sides); err != nil {
			return Roll{}, err
		}
		values := append([]int(nil), manual...)
		return Roll{Dice: values, Total: Sum(values), Manual: true}, nil
	}
	values := r.Roll(n, sides)
	return Roll{Dice: values, Total: Sum(values)}, nil
}

// ResolveInput is Resolve for a comma-separated override string. An empty
// string means "roll".
func (r *Roller) ResolveInput(input string, n, sides int) (Roll, error) {
	manual, err := ParseManual(input, n, sides)
	if err != nil {
		return Roll{}, err
	}
	return r.Resolve(manual, n, sides)
}

// ParseManual parses comma-separated dice faces and validates them. An empty
// input returns nil without error.
func ParseManual(input string, n, sides int) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	parts := strings.Split(input, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, gameerr.Validation("dice value %q is not an integer", strings.TrimSpace(p))
		}
		values = append(values, v)
	}

	if err := Validate(values, n, sides); err != nil {
		return nil, err
	}
	return values, nil
}

// Validate checks the die count and that every face lies in [1, sides].
func Validate(values []int, n, sides int) error {
	if sides < 1 {
		sides = DefaultSides
	}
	if len(values) != n {
		return gameerr.Validation("expected %d dice, got %d", n, len(values))
	}
	for i, v := range values {
		if v < 1 || v > sides {
			return gameerr.Validation("die %d has value %d, must be between 1 and %d", i+1, v, sides)
		}
	}
	return nil
}

// Sum adds all dice.
func Sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Format renders results as "4 + 6 = 10".
func Format(values []int) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	if len(values) == 1 {
		return parts[0]
	}
	return fmt.Sprintf("%s = %d", strings.Join(parts, " + "), Sum(values))
}

// WorldDensity maps a 2d6 total to the world density of an area.
func WorldDensity(total int) string {
	switch {
	case total <= 4:
		return "Low"
	case total <= 9:
		return "Medium"
	default:
		return "High"
	}
}
