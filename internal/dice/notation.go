package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terra-clan/spacegom-engine/internal/gameerr"
)

// Notation is either a fixed value ("3") or a dice expression ("2d6").
type Notation struct {
	Count int
	Sides int
	Fixed int
}

// ParseNotation reads "NdS" or a plain non-negative integer.
func ParseNotation(s string) (Notation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Notation{}, gameerr.Validation("empty dice notation")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Notation{}, gameerr.Validation("fixed value must be non-negative, got %d", n)
		}
		return Notation{Fixed: n}, nil
	}

	count, sides, ok := strings.Cut(s, "d")
	if !ok {
		return Notation{}, gameerr.Validation("invalid dice notation %q", s)
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 1 {
		return Notation{}, gameerr.Validation("invalid dice count in %q", s)
	}
	sd, err := strconv.Atoi(sides)
	if err != nil || sd < 2 {
		return Notation{}, gameerr.Validation("invalid dice sides in %q", s)
	}
	return Notation{Count: n, Sides: sd}, nil
}

// IsFixed reports whether the notation needs no dice.
func (n Notation) IsFixed() bool {
	return n.Count == 0
}

func (n Notation) String() string {
	if n.IsFixed() {
		return strconv.Itoa(n.Fixed)
	}
	return fmt.Sprintf("%dd%d", n.Count, n.Sides)
}

// Evaluate resolves the notation, using manual dice when supplied. A fixed
// value takes no dice.
func (n Notation) Evaluate(r *Roller, manual []int) (Roll, error) {
	if n.IsFixed() {
		if len(manual) > 0 {
			return Roll{}, gameerr.Validation("fixed value %d takes no dice, got %d", n.Fixed, len(manual))
		}
		return Roll{Total: n.Fixed}, nil
	}
	return r.Resolve(manual, n.Count, n.Sides)
}
