// Package parse implements the expression parser (spec component C): a
// precedence-climbing reader that works directly on the source string
// rather than a pre-tokenised stream. The teacher's own parser
// (robpike.io/ivy/parse) runs a classic lexer-then-parser pipeline with
// a fixed set of token kinds; this package instead asks the registry
// for the longest alias at the current byte offset on every step
// (registry.Registry.FindOperatorAt), since the spec requires the
// alias table — and therefore the set of recognised operator spellings
// — to be a runtime property of the registry the caller built, not a
// compile-time token enum.
package parse

import (
	"strconv"
	"strings"
	"unicode"

	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

// boundaryPrec is the minimum precedence the top-level parse accepts;
// anything (including assignment) binds within it.
const boundaryPrec = 1 << 30

// Parse reads the whole of source against reg and returns the resulting
// expression tree, or a *errs.Error of Kind Syntax.
func Parse(source string, reg *registry.Registry) (tree.Node, error) {
	p := &parser{src: []rune(strings.TrimSpace(source)), reg: reg}
	if assignPos, ok := p.findTopLevelAssign(); ok {
		return p.parseAssignOrDefinition(assignPos)
	}
	node, err := p.parseExpr(boundaryPrec)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, errs.New(errs.Syntax, "missing operator, expression is %q", string(p.src[p.pos:]))
	}
	return node, nil
}

type parser struct {
	src []rune
	pos int
	reg *registry.Registry
}

// findTopLevelAssign scans for `:=` at bracket depth zero, per spec
// §4.C ("detected by presence anywhere in the expression at top
// level"). Only the first one is split on here: a further `:=` in the
// body side is found again when that body is parsed, so `a := b := c`
// chains to the right.
func (p *parser) findTopLevelAssign() (int, bool) {
	depth := 0
	for i := 0; i < len(p.src); i++ {
		switch p.src[i] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		}
		if depth == 0 && i+1 < len(p.src) && p.src[i] == ':' && p.src[i+1] == '=' {
			return i, true
		}
	}
	return 0, false
}

// parseAssignOrDefinition splits the source at a top-level `:=` into a
// name side and a body side. If the name side is `name(p1, p2, ...)` it
// produces a FunctionDefinition; otherwise a plain Assign.
func (p *parser) parseAssignOrDefinition(assignPos int) (tree.Node, error) {
	nameSide := strings.TrimSpace(string(p.src[:assignPos]))
	bodySource := strings.TrimSpace(string(p.src[assignPos+2:]))

	if open := strings.IndexRune(nameSide, '('); open >= 0 && strings.HasSuffix(nameSide, ")") {
		identifier := strings.TrimSpace(nameSide[:open])
		if !isValidIdentifier(identifier) {
			return nil, errs.New(errs.Syntax, "invalid function name %q", identifier)
		}
		paramSrc := nameSide[open+1 : len(nameSide)-1]
		params, err := splitParams(paramSrc)
		if err != nil {
			return nil, err
		}
		body, err := Parse(bodySource, p.reg)
		if err != nil {
			return nil, err
		}
		return tree.FunctionDefinition{
			Identifier: identifier,
			Params:     params,
			Source:     bodySource,
			Body:       body,
		}, nil
	}

	identifier := strings.TrimSpace(nameSide)
	if !isValidIdentifier(identifier) {
		return nil, errs.New(errs.Syntax, "invalid assignment target %q", identifier)
	}
	body, err := Parse(bodySource, p.reg)
	if err != nil {
		return nil, err
	}
	return tree.Assign{Identifier: identifier, Value: body}, nil
}

func splitParams(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	params := make([]string, len(parts))
	for i, part := range parts {
		name := strings.TrimSpace(part)
		if !isValidIdentifier(name) {
			return nil, errs.New(errs.Syntax, "invalid parameter name %q", name)
		}
		params[i] = name
	}
	return params, nil
}

func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !isIdentRune(r) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// parseExpr is the precedence-climbing loop: it parses one primary
// operand, then repeatedly consumes binary operators whose precedence
// binds more tightly than boundary (numerically less than), per
// spec §4.C's "stop at the first operator whose precedence is
// numerically >= the surrounding operator's precedence" rule. Passing
// the just-consumed operator's own precedence as the boundary for its
// right-hand side gives left-associative chaining: a same-precedence
// operator immediately to the right fails the `< boundary` test inside
// the recursive call and is instead picked up by this loop's next
// iteration.
func (p *parser) parseExpr(boundary int) (tree.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		d, alias, ok := p.reg.FindOperatorAt(string(p.src[p.pos:]), 0)
		if !ok || d.Precedence >= boundary || d.Arity == registry.Assignment {
			return left, nil
		}
		p.pos += len([]rune(alias))

		switch d.Arity {
		case registry.Unary, registry.TrigUnary:
			// A unary-function alias found in infix position (e.g.
			// `x sin`) is a syntax error: these always appear as a
			// prefix before their argument, handled in parsePrimary.
			return nil, errs.New(errs.Syntax, "missing operator, expression is %q", string(p.src[p.pos-len([]rune(alias)):]))
		case registry.Conversion:
			toUnit, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			left = tree.Application{Operator: alias, Args: []tree.Node{left, toUnit}}
		default:
			rightBoundary := d.Precedence
			if isRightAssociative(alias) {
				// Right-associative operators (power: 2^3^2 == 2^(3^2))
				// let their own precedence be consumed again on the
				// right, instead of stopping at it as the left-
				// associative default does.
				rightBoundary = d.Precedence + 1
			}
			right, err := p.parseExpr(rightBoundary)
			if err != nil {
				return nil, err
			}
			left = tree.Application{Operator: alias, Args: []tree.Node{left, right}}
		}
	}
}

// isRightAssociative reports whether repeated uses of alias should nest
// to the right (`2^3^2` == `2^(3^2)`). Assignment is also
// right-associative per spec §4.B but never reaches this path: it's
// handled structurally by findTopLevelAssign before precedence climbing
// starts.
func isRightAssociative(alias string) bool {
	return alias == "^"
}

func (p *parser) parseIdentifier() (tree.Node, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentRune(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, errs.New(errs.Syntax, "expected identifier at %q", string(p.src[start:]))
	}
	return tree.Name{Identifier: string(p.src[start:p.pos])}, nil
}

// parsePrimary parses one leaf: a parenthesised expression, a vector or
// matrix literal, a unary-minus/plus desugaring, a prefix-function
// application, a numeric literal, or a bare identifier.
func (p *parser) parsePrimary() (tree.Node, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, errs.New(errs.Syntax, "missing operator, expression is \"\"")
	}

	switch p.src[p.pos] {
	case '(':
		return p.parseGroup('(', ')')
	case '{':
		return p.parseVector()
	case '[':
		return p.parseMatrix()
	case '-', '−':
		p.pos++
		arg, err := p.parseExpr(registry.PrecAddSub)
		if err != nil {
			return nil, err
		}
		return tree.Application{Operator: "-", Args: []tree.Node{tree.Literal{Value: value.RationalFromInt64(0)}, arg}}, nil
	case '+':
		p.pos++
		return p.parseExpr(registry.PrecAddSub)
	}

	if unicode.IsDigit(p.src[p.pos]) || (p.src[p.pos] == '.' && p.pos+1 < len(p.src) && unicode.IsDigit(p.src[p.pos+1])) {
		return p.parseNumber()
	}

	if isIdentRune(p.src[p.pos]) {
		return p.parseIdentifierOrCall()
	}

	return nil, errs.New(errs.Syntax, "missing operator, expression is %q", string(p.src[p.pos:]))
}

// parseGroup parses `open ... close` and returns the parsed interior.
func (p *parser) parseGroup(open, close rune) (tree.Node, error) {
	p.pos++ // consume open
	inner, err := p.parseExpr(boundaryPrec)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != close {
		return nil, errs.New(errs.Syntax, "unbalanced %q", open)
	}
	p.pos++
	return inner, nil
}

// parseVector parses `{a, b, c}`, splitting on commas at bracket depth
// zero within the braces.
func (p *parser) parseVector() (tree.Node, error) {
	segments, err := p.parseDelimited('{', '}', ',')
	if err != nil {
		return nil, err
	}
	elems := make([]tree.Node, len(segments))
	for i, seg := range segments {
		n, err := Parse(seg, p.reg)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	return tree.VectorLiteral{Elements: elems}, nil
}

// parseMatrix parses `[row; row; row]`, splitting rows on `;` and each
// row's cells on `,`, both at bracket depth zero (SPEC_FULL §9.2
// decision: `;` is the only row separator).
func (p *parser) parseMatrix() (tree.Node, error) {
	rowSegments, err := p.parseDelimited('[', ']', ';')
	if err != nil {
		return nil, err
	}
	rows := make([][]tree.Node, len(rowSegments))
	for i, rowSrc := range rowSegments {
		cells, err := splitTopLevel(rowSrc, ',')
		if err != nil {
			return nil, err
		}
		row := make([]tree.Node, len(cells))
		for j, cell := range cells {
			n, err := Parse(cell, p.reg)
			if err != nil {
				return nil, err
			}
			row[j] = n
		}
		rows[i] = row
	}
	return tree.MatrixLiteral{Rows: rows}, nil
}

// parseDelimited consumes `open ... close` starting at the current
// position and splits its interior on sep at depth zero.
func (p *parser) parseDelimited(open, close rune, sep rune) ([]string, error) {
	start := p.pos
	p.pos++ // consume open
	depth := 1
	for p.pos < len(p.src) && depth > 0 {
		switch p.src[p.pos] {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		}
		p.pos++
	}
	if depth != 0 {
		return nil, errs.New(errs.Syntax, "unbalanced %q", open)
	}
	interior := string(p.src[start+1 : p.pos-1])
	return splitTopLevel(interior, sep)
}

func splitTopLevel(s string, sep rune) ([]string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	var parts []string
	depth := 0
	last := 0
	runes := []rune(trimmed)
	for i, r := range runes {
		switch r {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(string(runes[last:i])))
				last = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errs.New(errs.Syntax, "unbalanced brackets in %q", trimmed)
	}
	parts = append(parts, strings.TrimSpace(string(runes[last:])))
	return parts, nil
}

// parseNumber scans a decimal literal and dispatches to rational-or-
// double construction per spec §4.A: an integral literal becomes an
// exact Rational, anything with a fractional part or exponent becomes a
// Double.
func (p *parser) parseNumber() (tree.Node, error) {
	start := p.pos
	isFloat := false
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case unicode.IsDigit(r):
			p.pos++
		case r == '.' && !isFloat:
			isFloat = true
			p.pos++
		case (r == 'e' || r == 'E') && p.pos > start:
			isFloat = true
			p.pos++
			if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
				p.pos++
			}
		default:
			goto done
		}
	}
done:
	text := string(p.src[start:p.pos])
	if !isFloat {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, errs.New(errs.Syntax, "invalid numeric literal %q", text)
		}
		return tree.Literal{Value: value.RationalFromInt64(n)}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, errs.New(errs.Syntax, "invalid numeric literal %q", text)
	}
	// A literal written with a decimal point or exponent is a Double as
	// typed — value.FromFloat64's continued-fraction reduction to
	// Rational is for values arriving at runtime (arithmetic results,
	// explicit toRational), not for re-interpreting what the user wrote.
	return tree.Literal{Value: value.NewDouble(f)}, nil
}

// parseIdentifierOrCall scans an identifier. If it names an installed
// Unary or TrigUnary operator, it is parsed as a prefix application:
// either over an explicit parenthesised argument list, or (spec §4.B:
// "implicitly highest-binding on their one argument") over the next
// primary-and-tighter expression. Otherwise it becomes a bare Name, or
// — if immediately followed by `(args)` — an Application against a
// user-defined function name resolved later by package eval.
func (p *parser) parseIdentifierOrCall() (tree.Node, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentRune(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])

	// clearvars is a reserved zero-arity token (spec §4.D, §6), not an
	// operator alias or a callable name: it always produces a
	// tree.ClearVars node, never a Name lookup or Application.
	if name == "clearvars" {
		return tree.ClearVars{}, nil
	}

	if d, ok := p.reg.Find(name); ok && (d.Arity == registry.Unary || d.Arity == registry.TrigUnary) {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '(' {
			args, err := p.parseDelimited('(', ')', ',')
			if err != nil {
				return nil, err
			}
			if len(args) != 1 {
				return nil, errs.New(errs.Syntax, "wrong number of arguments to operator %s: got %d, want 1", name, len(args))
			}
			arg, err := Parse(args[0], p.reg)
			if err != nil {
				return nil, err
			}
			return tree.Application{Operator: name, Args: []tree.Node{arg}}, nil
		}
		arg, err := p.parseExpr(registry.PrecUnaryFunc)
		if err != nil {
			return nil, err
		}
		return tree.Application{Operator: name, Args: []tree.Node{arg}}, nil
	}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		args, err := p.parseDelimited('(', ')', ',')
		if err != nil {
			return nil, err
		}
		children := make([]tree.Node, len(args))
		for i, a := range args {
			n, err := Parse(a, p.reg)
			if err != nil {
				return nil, err
			}
			children[i] = n
		}
		return tree.Application{Operator: name, Args: children}, nil
	}

	return tree.Name{Identifier: name}, nil
}
