package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String renders v the way the REPL and EvaluateString show it: exact
// fractions as "num/den" (bare integer when den == 1), percents with a
// trailing '%', vectors as "{a, b, c}", matrices as "[a, b; c, d]".
func (v Value) String() string {
	switch v.kind {
	case Rational:
		if v.rat.IsInt() {
			return v.rat.Num().String()
		}
		return v.rat.Num().String() + "/" + v.rat.Denom().String()
	case Double:
		return formatFloat(v.dbl)
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Percent:
		return formatFloat(v.dbl) + "%"
	case Vector:
		parts := make([]string, len(v.vec))
		for i, e := range v.vec {
			parts[i] = e.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case Matrix:
		rows := make([]string, v.mat.Rows)
		for r := 0; r < v.mat.Rows; r++ {
			cells := make([]string, v.mat.Cols)
			for c := 0; c < v.mat.Cols; c++ {
				cells[c] = v.mat.Data[r*v.mat.Cols+c].String()
			}
			rows[r] = strings.Join(cells, ", ")
		}
		return "[" + strings.Join(rows, "; ") + "]"
	case FunctionKind:
		return fmt.Sprintf("%s(%s) := %s", v.fn.Name, strings.Join(v.fn.Params, ", "), v.fn.Source)
	default:
		return "<invalid>"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
