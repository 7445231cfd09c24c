package registry

// NewBinaryRegistry returns a registry holding only the arithmetic
// family (^ * / + - matmul). This is the minimal preset spec §4.B
// guarantees is always available, suitable for an embedding that wants
// pure numeric evaluation with no function calls, comparisons, or
// conversions.
func NewBinaryRegistry() (*Registry, error) {
	r := New()
	if err := installArith(r); err != nil {
		return nil, err
	}
	return r, nil
}

// NewSimpleRegistry extends the binary preset with the unary scalar and
// trig/log/factorial/percent functions — arithmetic plus unary scalar
// ops, per spec §6's `new_simple_evaluator`, and nothing else: relational,
// equality, and logical operators belong to the full preset only.
func NewSimpleRegistry() (*Registry, error) {
	r, err := NewBinaryRegistry()
	if err != nil {
		return nil, err
	}
	if err := installUnaryScalar(r); err != nil {
		return nil, err
	}
	return r, nil
}

// NewFullRegistry installs every operator family named in spec §6:
// arithmetic, unary scalar/trig functions, relational/equality/logical,
// container (where/select), unit conversion (in/to/as), and the `:=`
// assignment alias.
func NewFullRegistry() (*Registry, error) {
	r, err := NewSimpleRegistry()
	if err != nil {
		return nil, err
	}
	if err := r.Install(&Descriptor{Aliases: []string{":="}, Precedence: PrecAssign, Arity: Assignment}); err != nil {
		return nil, err
	}
	if err := installLogical(r); err != nil {
		return nil, err
	}
	if err := installContainer(r); err != nil {
		return nil, err
	}
	if err := installConversion(r); err != nil {
		return nil, err
	}
	return r, nil
}
