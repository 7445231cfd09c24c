// Package convert supplies the one collaborator the evaluator needs for
// the `in`/`to`/`as` operator family: something that turns a quantity
// plus a source and destination unit label into a converted quantity.
// Unit conversion tables themselves are out of scope (spec §1
// Non-goals); this package only fixes the contract an embedder plugs a
// real conversion table into, mirroring how registry.Converter is
// declared against package value alone.
package convert

import (
	"fmt"

	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/value"
)

// NullConverter rejects every conversion. It's the default collaborator
// an evaluator.Evaluator is constructed with (see package evaluator),
// so a program that never calls SetConverter still type-checks and
// fails loudly, not silently, the first time a program uses `to`.
type NullConverter struct{}

var _ registry.Converter = NullConverter{}

// Convert always fails: NullConverter knows no units.
func (NullConverter) Convert(_ value.Value, from, to string) (value.Value, error) {
	return value.Value{}, fmt.Errorf("no unit conversion table installed: cannot convert %q to %q", from, to)
}

// Table is a minimal ratio-based Converter: every unit is defined as a
// fixed multiple of some base unit it shares with the units it converts
// to/from. It's grounded on the retrieval pack's simplest config-table
// pattern (mcgru/funxy's static map-driven lookups) generalized to a
// runtime-buildable map rather than a compile-time literal.
type Table struct {
	// ratios[unit] is the factor that converts one unit into the shared
	// base unit for its dimension (e.g. ratios["mph"] = 0.44704 if the
	// base unit for speed is meters/second).
	ratios map[string]float64
}

// NewTable returns an empty conversion table.
func NewTable() *Table {
	return &Table{ratios: make(map[string]float64)}
}

// Define registers unit as convertible to the shared base for its
// dimension via the given ratio (1 unit == ratio base-units).
func (t *Table) Define(unit string, ratioToBase float64) {
	t.ratios[unit] = ratioToBase
}

// Convert implements registry.Converter. An empty from means "already
// expressed in base units" — the evaluator's `in`/`to`/`as` operator
// never knows a quantity's source unit, so this is the only sensible
// default for a two-operand (quantity, destination) conversion surface.
func (t *Table) Convert(v value.Value, from, to string) (value.Value, error) {
	fromRatio := 1.0
	if from != "" {
		var ok bool
		fromRatio, ok = t.ratios[from]
		if !ok {
			return value.Value{}, fmt.Errorf("unknown unit %q", from)
		}
	}
	toRatio, ok := t.ratios[to]
	if !ok {
		return value.Value{}, fmt.Errorf("unknown unit %q", to)
	}
	f, err := value.ToDouble(v)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewDouble(f * fromRatio / toRatio), nil
}
