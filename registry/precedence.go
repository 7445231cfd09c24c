package registry

// Precedence levels from spec §4.B. Lower numerically binds tighter;
// this is the opposite convention from many textbook Pratt parsers
// (where higher number means tighter) but it's spec.md's own table, so
// the parser's climbing logic (package parse) is written against it
// directly rather than re-normalizing.
const (
	PrecPower      = 1
	PrecMulDiv     = 2
	PrecAddSub     = 3
	PrecUnaryFunc  = 4
	PrecRelational = 5
	PrecEquality   = 6
	PrecLogical    = 7
	PrecConvert    = 8
	PrecAssign     = 9
)
