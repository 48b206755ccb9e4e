package diagnosis

import "math"

// bracket is one step of a piecewise score table: the value scores `score`
// when it is below `upper`. Tables end with an unbounded bracket.
type bracket struct {
	upper float64
	score int
}

var numericBrackets = map[NumericKind][]bracket{
	NumericAge: {
		{25, 1},
		{30, 2},
		{35, 3},
		{40, 5},
		{math.Inf(1), 8},
	},
	NumericBMI: {
		{18.5, 3},
		{25, 0},
		{30, 2},
		{math.Inf(1), 5},
	},
}

// scoreNumeric maps a numeric answer onto the question's bracket table.
// Questions without a numeric kind score zero.
func scoreNumeric(kind *NumericKind, value float64) int {
	if kind == nil {
		return 0
	}
	for _, b := range numericBrackets[*kind] {
		if value < b.upper {
			return b.score
		}
	}
	return 0
}
