package stage

// #region imports
import (
	"fmt"
	"strings"
)

// #endregion

// #region stage

// Stage is a discrete phase of solar-plant construction, ordered by build maturity.
type Stage string

const (
	Foundation   Stage = "foundation"
	Mounting     Stage = "mounting"
	Installation Stage = "installation"
)

// #endregion

// #region ordering

// order maps each stage to its maturity rank. Foundation is the earliest phase.
var order = map[Stage]int{
	Foundation:   0,
	Mounting:     1,
	Installation: 2,
}

// All returns every stage in maturity order.
func All() []Stage {
	return []Stage{Foundation, Mounting, Installation}
}

// Rank returns the maturity rank of s, or -1 for an unknown stage.
func Rank(s Stage) int {
	r, ok := order[s]
	if !ok {
		return -1
	}
	return r
}

// Less reports whether a is an earlier construction phase than b.
func Less(a, b Stage) bool {
	return Rank(a) < Rank(b)
}

// #endregion

// #region parse

// Valid reports whether s is one of the three known stages.
func Valid(s Stage) bool {
	_, ok := order[s]
	return ok
}

// Parse normalizes external input ("Mounting", " installation ") to a Stage.
func Parse(raw string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !Valid(s) {
		return "", fmt.Errorf("unknown stage %q", raw)
	}
	return s, nil
}

// #endregion
