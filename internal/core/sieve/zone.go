package sieve

import "fmt"

// Zone is a closed interval of the angular parameter. Callers keep
// Start <= End.
type Zone struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Width returns End - Start
func (z Zone) Width() float64 {
	return z.End - z.Start
}

// Less orders zones by Start, then by End
func (z Zone) Less(o Zone) bool {
	if z.Start != o.Start {
		return z.Start < o.Start
	}
	return z.End < o.End
}

func (z Zone) String() string {
	return fmt.Sprintf("[%g, %g]", z.Start, z.End)
}
