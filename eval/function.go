package eval

import (
	"weak"

	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

// boundFunction is the concrete type behind value.Function.Runtime for
// every function this package creates. It carries the compiled body
// plus a weak, non-owning reference to the Context it was defined in
// (spec §3: the façade "holds a weak reference back to the context it
// was compiled against, and reports failure rather than reviving it").
// weak.Pointer lets the Context be garbage collected once nothing else
// references it, instead of being kept alive forever by every closure
// ever defined against it — the problem ivy's exec.Function sidesteps
// entirely by only ever living as long as its one owning Context.
type boundFunction struct {
	ctx  weak.Pointer[Context]
	body tree.Node
}

// newBoundFunction captures a weak reference to ctx alongside body.
func newBoundFunction(ctx *Context, body tree.Node) *boundFunction {
	return &boundFunction{ctx: weak.Make(ctx), body: body}
}

// resolve strengthens the weak reference, returning ok=false if the
// owning Context has since been collected.
func (b *boundFunction) resolve() (*Context, bool) {
	ctx := b.ctx.Value()
	return ctx, ctx != nil
}

// runtimeOf extracts the boundFunction carried by a FunctionKind value,
// or nil if fn was constructed by something other than this package
// (e.g. a session restored from disk before its body was recompiled).
func runtimeOf(fn *value.Function) (*boundFunction, bool) {
	bf, ok := fn.Runtime.(*boundFunction)
	return bf, ok
}
