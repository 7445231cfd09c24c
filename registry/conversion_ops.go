package registry

import "mathex.dev/calcex/value"

// installConversion wires `in`, `to`, and `as` as three spellings of the
// same unit-conversion binary operator. The destination unit is never a
// number, so it doesn't travel through the args []value.Value slice at
// all: the parser captures its identifier as raw text and package eval
// calls ApplyConversion directly with the quantity already reduced and
// the destination unit as a plain string (SPEC_FULL §9.3 — conversion
// always takes an explicit quantity and an explicit destination-unit
// operand, never bare juxtaposition like ivy's `12mph`; the source unit
// is left to the Converter collaborator to infer, since tracking it is
// itself out of scope per spec §1).
//
// Reduce is left nil here: Conversion-arity descriptors are never
// dispatched through the normal args-slice path, only through
// ApplyConversion below.
func installConversion(r *Registry) error {
	ops := []*Descriptor{
		{Aliases: []string{"in"}, Precedence: PrecConvert, Arity: Conversion, Reduce: nil},
		{Aliases: []string{"to"}, Precedence: PrecConvert, Arity: Conversion, Reduce: nil},
		{Aliases: []string{"as"}, Precedence: PrecConvert, Arity: Conversion, Reduce: nil},
	}
	for _, d := range ops {
		if err := r.Install(d); err != nil {
			return err
		}
	}
	return nil
}

// ApplyConversion is what package eval calls for any Conversion-arity
// descriptor: quantity is already reduced, fromUnit/toUnit are raw
// identifier text (fromUnit is "" when the source unit isn't tracked).
func ApplyConversion(ctx EvalContext, quantity value.Value, fromUnit, toUnit string) (value.Value, error) {
	return ctx.Converter().Convert(quantity, fromUnit, toUnit)
}
