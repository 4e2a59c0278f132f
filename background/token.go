package background

import "context"

// Token is the cancellation handle of one load attempt.
type Token struct {
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Generation returns the monotonically increasing attempt number.
func (t *Token) Generation() uint64 {
	if t == nil {
		return 0
	}
	return t.gen
}

// Context is cancelled once the token is superseded or torn down.
func (t *Token) Context() context.Context {
	if t == nil {
		return nil
	}
	return t.ctx
}

// Cancelled reports whether the token has been cancelled.
func (t *Token) Cancelled() bool {
	return t == nil || t.ctx.Err() != nil
}

// generations hands out tokens; at most one is live at a time.
type generations struct {
	parent context.Context
	next   uint64
	active *Token
}

func newGenerations(parent context.Context) *generations {
	if parent == nil {
		parent = context.Background()
	}
	return &generations{parent: parent}
}

// issue cancels the active token and returns its replacement.
func (g *generations) issue() *Token {
	g.cancel()
	g.next++
	ctx, cancel := context.WithCancel(g.parent)
	g.active = &Token{gen: g.next, ctx: ctx, cancel: cancel}
	return g.active
}

// isActive reports whether t is the live, un-cancelled token.
func (g *generations) isActive(t *Token) bool {
	return t != nil && g.active == t && !t.Cancelled()
}

// retire releases t after its load completed so no token stays live.
func (g *generations) retire(t *Token) {
	if g.active == t {
		t.cancel()
		g.active = nil
	}
}

func (g *generations) cancel() {
	if g.active == nil {
		return
	}
	g.active.cancel()
	g.active = nil
}
