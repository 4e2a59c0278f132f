package background

import (
	"context"
	"errors"
	"log/slog"

	"github.com/milk9111/roombg/playlist"
	"golang.org/x/sync/errgroup"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateCommitted:
		return "committed"
	}
	return "unknown"
}

// completionBuffer bounds how many finished loads may wait for the next tick
// before their goroutines block.
const completionBuffer = 16

type completion struct {
	token *Token
	id    Identity
	art   *Artifact
	err   error
}

type Option func(*Coordinator)

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithPlaceholder sets the factory for the empty-identity background. It is
// called on the game goroutine and must return a fresh artifact each time.
func WithPlaceholder(fn func() *Artifact) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.placeholder = fn
		}
	}
}

// WithContext parents every load context on ctx.
func WithContext(ctx context.Context) Option {
	return func(c *Coordinator) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// Coordinator swaps the background whenever the identity of the selected
// playlist item changes.
//
// Change notifications only set a dirty flag; Update drains it once per tick
// so a batch of mutations costs one recomputation. Loads run on their own
// goroutines and report back through a channel that Update also drains, so
// every state transition happens on the goroutine calling Update. At most one
// load token is live; a completion carrying any other token is dropped.
type Coordinator struct {
	loader      Loader
	transition  *Transition
	binding     *Binding
	placeholder func() *Artifact
	log         *slog.Logger
	metrics     *Metrics
	parent      context.Context

	gens    *generations
	group   errgroup.Group
	results chan completion
	done    chan struct{}

	state        State
	target       Identity
	committed    Identity
	hasCommitted bool

	dirty  bool
	force  bool
	closed bool
}

func NewCoordinator(loader Loader, transition *Transition, opts ...Option) *Coordinator {
	c := &Coordinator{
		loader:      loader,
		transition:  transition,
		placeholder: func() *Artifact { return NewArtifact(Empty, nil) },
		log:         slog.Default(),
		parent:      context.Background(),
		results:     make(chan completion, completionBuffer),
		done:        make(chan struct{}),
		dirty:       true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.gens = newGenerations(c.parent)
	c.binding = NewBinding(c.MarkDirty)
	// The placeholder is up before the first tick so the first cover fades in
	// over it, and a failed first load still leaves something on screen.
	c.commitPlaceholder()
	return c
}

// SetSource rebinds the coordinator to a new playlist.
func (c *Coordinator) SetSource(l *playlist.List) {
	if c == nil || c.closed {
		return
	}
	c.binding.SetSource(l)
}

// Source returns the bound playlist.
func (c *Coordinator) Source() *playlist.List {
	if c == nil {
		return nil
	}
	return c.binding.Source()
}

// MarkDirty schedules a recomputation on the next Update.
func (c *Coordinator) MarkDirty() {
	if c == nil {
		return
	}
	c.dirty = true
}

// Refresh schedules a recomputation that reloads even when the identity is
// unchanged.
func (c *Coordinator) Refresh() {
	if c == nil {
		return
	}
	c.dirty = true
	c.force = true
}

// Update runs one tick: the pending recomputation first, so completions
// already made stale by it are dropped, then any finished loads.
func (c *Coordinator) Update() {
	if c == nil || c.closed {
		return
	}
	if c.dirty {
		c.dirty = false
		c.recompute()
	}
	for {
		select {
		case r := <-c.results:
			c.complete(r)
		default:
			return
		}
	}
}

func (c *Coordinator) recompute() {
	c.metrics.recompute()

	id := Resolve(c.binding.Items())
	force := c.force
	c.force = false

	if settled, ok := c.settled(); ok && settled == id && !force {
		c.metrics.redundant()
		return
	}

	if id.IsEmpty() {
		// Nothing to fetch: drop any live load and show the placeholder now.
		c.gens.cancel()
		if c.hasCommitted && c.committed.IsEmpty() && !force {
			c.restore()
			return
		}
		c.commitPlaceholder()
		return
	}

	tok := c.gens.issue()
	c.state = StateLoading
	c.target = id
	c.metrics.started()
	c.log.Debug("background load started", "identity", id.String(), "generation", tok.Generation())

	loader := c.loader
	c.group.Go(func() error {
		art, err := loader.Load(tok.Context(), id)
		select {
		case c.results <- completion{token: tok, id: id, art: art, err: err}:
		case <-c.done:
			art.Dispose()
		}
		return nil
	})
}

// settled returns the identity the coordinator is heading for.
func (c *Coordinator) settled() (Identity, bool) {
	switch c.state {
	case StateLoading:
		return c.target, true
	case StateCommitted:
		return c.committed, true
	}
	return Empty, false
}

func (c *Coordinator) complete(r completion) {
	if !c.gens.isActive(r.token) {
		r.art.Dispose()
		c.metrics.finished(OutcomeSuperseded)
		c.log.Debug("background load superseded", "identity", r.id.String(), "generation", r.token.Generation())
		return
	}
	c.gens.retire(r.token)

	if r.err != nil || r.art == nil {
		r.art.Dispose()
		c.restore()
		if errors.Is(r.err, context.Canceled) {
			c.metrics.finished(OutcomeCancelled)
			return
		}
		c.metrics.finished(OutcomeFailed)
		c.log.Warn("background load failed", "identity", r.id.String(), "error", r.err)
		return
	}

	c.commit(r.id, r.art)
	c.metrics.finished(OutcomeCommitted)
}

// commitPlaceholder shows the empty-identity background. It never started a
// load, so it is counted apart from finished loads.
func (c *Coordinator) commitPlaceholder() {
	c.commit(Empty, c.placeholder())
	c.metrics.placeholder()
}

func (c *Coordinator) commit(id Identity, art *Artifact) {
	c.transition.Commit(art)
	c.state = StateCommitted
	c.committed = id
	c.hasCommitted = true
	c.target = Empty
	c.log.Debug("background committed", "identity", id.String())
}

// restore falls back to whatever was committed before the failed load.
func (c *Coordinator) restore() {
	c.target = Empty
	if c.hasCommitted {
		c.state = StateCommitted
		return
	}
	c.state = StateIdle
}

// State returns the current state.
func (c *Coordinator) State() State {
	if c == nil {
		return StateIdle
	}
	return c.state
}

// Target returns the identity being loaded while in StateLoading.
func (c *Coordinator) Target() Identity {
	if c == nil || c.state != StateLoading {
		return Empty
	}
	return c.target
}

// Committed returns the identity on display.
func (c *Coordinator) Committed() (Identity, bool) {
	if c == nil {
		return Empty, false
	}
	return c.committed, c.hasCommitted
}

// ActiveToken returns the live token, nil when no load is in flight.
func (c *Coordinator) ActiveToken() *Token {
	if c == nil || c.gens == nil {
		return nil
	}
	return c.gens.active
}

// Close cancels the live load, detaches from the source and waits for
// outstanding loader goroutines. Committed layers stay with the transition.
func (c *Coordinator) Close() error {
	if c == nil || c.closed {
		return nil
	}
	c.closed = true
	c.binding.SetSource(nil)
	close(c.done)
	c.gens.cancel()
	err := c.group.Wait()
	for {
		select {
		case r := <-c.results:
			r.art.Dispose()
		default:
			return err
		}
	}
}
