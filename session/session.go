// Package session persists and restores a workspace's user-defined
// variables and functions as a JSON document — the generalization of
// the teacher's (robpike.io/ivy) exec/save.go, which serializes
// Globals and operator defs as ivy source text to be replayed on
// load. This package keeps ivy's "variables + op sources, sorted for
// determinism" shape but targets a JSON document editable with any
// tool, per SPEC_FULL.md §6, using github.com/tidwall/gjson and
// github.com/tidwall/sjson rather than a bespoke text format.
package session

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/eval"
	"mathex.dev/calcex/parse"
	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

// Save writes every global variable and user-defined function bound in
// ctx to w as one JSON document: {"variables": {...}, "functions":
// {...}}. Variables and functions are each walked in sorted name order
// so repeated saves of an unchanged workspace produce byte-identical
// output, mirroring ivy's own sortVars before writing.
func Save(ctx *eval.Context, w io.Writer) error {
	doc := `{"variables":{},"functions":{}}`

	vars := ctx.Variables()
	names := sortedKeys(vars)
	for _, name := range names {
		encoded, err := encodeValue(vars[name])
		if err != nil {
			return errs.Wrap(errs.Type, err, fmt.Sprintf("encoding variable %q", name))
		}
		doc, err = sjson.SetRaw(doc, "variables."+name, encoded)
		if err != nil {
			return errs.Wrap(errs.Syntax, err, "writing session document")
		}
	}

	funcs := ctx.Functions()
	fnNames := sortedKeys(funcs)
	for _, name := range fnNames {
		fn, ok := funcs[name].FunctionValue()
		if !ok {
			continue
		}
		var err error
		doc, err = sjson.Set(doc, "functions."+name+".source", fn.Source)
		if err != nil {
			return errs.Wrap(errs.Syntax, err, "writing session document")
		}
		doc, err = sjson.Set(doc, "functions."+name+".params", fn.Params)
		if err != nil {
			return errs.Wrap(errs.Syntax, err, "writing session document")
		}
	}

	_, err := io.WriteString(w, doc)
	return err
}

// Load reads a document written by Save and binds every variable and
// function it names into ctx, leaving ctx's existing bindings in place
// otherwise (a Load does not ClearVars first — callers wanting a clean
// slate call that themselves).
func Load(ctx *eval.Context, r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(raw) {
		return errs.New(errs.Syntax, "session document is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)

	var loadErr error
	doc.Get("variables").ForEach(func(key, v gjson.Result) bool {
		decoded, err := decodeValue(v)
		if err != nil {
			loadErr = errs.Wrap(errs.Type, err, fmt.Sprintf("decoding variable %q", key.String()))
			return false
		}
		if err := ctx.AssignGlobal(key.String(), decoded); err != nil {
			loadErr = err
			return false
		}
		return true
	})
	if loadErr != nil {
		return loadErr
	}

	doc.Get("functions").ForEach(func(key, v gjson.Result) bool {
		params := make([]string, 0)
		for _, p := range v.Get("params").Array() {
			params = append(params, p.String())
		}
		source := v.Get("source").String()
		node, err := parse.Parse(source, ctx.Registry())
		if err != nil {
			loadErr = errs.Wrap(errs.Syntax, err, fmt.Sprintf("reparsing function %q body", key.String()))
			return false
		}
		// eval.Eval on a FunctionDefinition node, not a bare
		// DefineFunction call, so the function's Runtime (the
		// weak-context closure newBoundFunction builds) is attached
		// exactly the way a freshly-typed `name(params) := body`
		// definition would be.
		def := tree.FunctionDefinition{Identifier: key.String(), Params: params, Source: source, Body: node}
		if _, err := eval.Eval(def, ctx); err != nil {
			loadErr = err
			return false
		}
		return true
	})
	return loadErr
}

func sortedKeys(m map[string]value.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// encodeValue renders v as a JSON object {"kind": ..., ...} built
// directly from value.Value's own accessors, never by round-tripping
// through v.String() and the parser — percents and non-finite doubles
// have no literal syntax in this grammar, so a text round trip would
// silently fail for exactly the values most worth testing.
func encodeValue(v value.Value) (string, error) {
	doc := `{}`
	var err error
	switch v.Kind() {
	case value.Rational:
		r, _ := v.Rat()
		doc, err = sjson.Set(doc, "kind", "rational")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "num", r.Num().String())
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "den", r.Denom().String())
		return doc, err
	case value.Double:
		f, _ := v.Float64()
		doc, err = sjson.Set(doc, "kind", "double")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "value", encodeFloat(f))
		return doc, err
	case value.Bool:
		b, _ := v.BoolValue()
		doc, err = sjson.Set(doc, "kind", "bool")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "value", b)
		return doc, err
	case value.Percent:
		pct, _ := v.PercentValue()
		doc, err = sjson.Set(doc, "kind", "percent")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "value", encodeFloat(pct))
		return doc, err
	case value.Vector:
		elems, _ := v.VectorElems()
		doc, err = sjson.Set(doc, "kind", "vector")
		if err != nil {
			return "", err
		}
		for i, e := range elems {
			encoded, err := encodeValue(e)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, fmt.Sprintf("elems.%d", i), encoded)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case value.Matrix:
		m, _ := v.MatrixValue()
		doc, err = sjson.Set(doc, "kind", "matrix")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "rows", m.Rows)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "cols", m.Cols)
		if err != nil {
			return "", err
		}
		for i, e := range m.Data {
			encoded, err := encodeValue(e)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, fmt.Sprintf("data.%d", i), encoded)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "", fmt.Errorf("value kind %s cannot be persisted to a session document", v.Kind())
	}
}

// encodeFloat represents a double as JSON, falling back to a tagged
// string for the three values JSON numbers can't carry.
func encodeFloat(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}

func decodeFloat(r gjson.Result) (float64, error) {
	if r.Type == gjson.String {
		switch r.String() {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		default:
			return strconv.ParseFloat(r.String(), 64)
		}
	}
	return r.Float(), nil
}

func decodeValue(r gjson.Result) (value.Value, error) {
	switch r.Get("kind").String() {
	case "rational":
		num, ok1 := new(big.Int).SetString(r.Get("num").String(), 10)
		den, ok2 := new(big.Int).SetString(r.Get("den").String(), 10)
		if !ok1 || !ok2 {
			return value.Value{}, fmt.Errorf("malformed rational in session document")
		}
		return value.NewRational(new(big.Rat).SetFrac(num, den)), nil
	case "double":
		f, err := decodeFloat(r.Get("value"))
		if err != nil {
			return value.Value{}, err
		}
		return value.NewDouble(f), nil
	case "bool":
		return value.NewBool(r.Get("value").Bool()), nil
	case "percent":
		f, err := decodeFloat(r.Get("value"))
		if err != nil {
			return value.Value{}, err
		}
		return value.NewPercent(f), nil
	case "vector":
		var elems []value.Value
		var decodeErr error
		r.Get("elems").ForEach(func(_, e gjson.Result) bool {
			v, err := decodeValue(e)
			if err != nil {
				decodeErr = err
				return false
			}
			elems = append(elems, v)
			return true
		})
		if decodeErr != nil {
			return value.Value{}, decodeErr
		}
		return value.NewVector(elems), nil
	case "matrix":
		rows := int(r.Get("rows").Int())
		cols := int(r.Get("cols").Int())
		var data []value.Value
		var decodeErr error
		r.Get("data").ForEach(func(_, e gjson.Result) bool {
			v, err := decodeValue(e)
			if err != nil {
				decodeErr = err
				return false
			}
			data = append(data, v)
			return true
		})
		if decodeErr != nil {
			return value.Value{}, decodeErr
		}
		return value.NewMatrix(rows, cols, data)
	default:
		return value.Value{}, fmt.Errorf("unknown value kind %q in session document", r.Get("kind").String())
	}
}
