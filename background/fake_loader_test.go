package background

import (
	"context"
	"testing"
	"time"

	"github.com/milk9111/roombg/playlist"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type loadResult struct {
	art *Artifact
	err error
}

// pendingLoad is one Load call parked until the test answers it.
type pendingLoad struct {
	id   Identity
	ctx  context.Context
	done chan loadResult

	// cancelledAtRelease is set when the test answers a call whose token was
	// already cancelled.
	cancelledAtRelease bool
}

func (p *pendingLoad) succeed() *Artifact {
	p.cancelledAtRelease = p.ctx.Err() != nil
	art := NewArtifact(p.id, nil)
	p.done <- loadResult{art: art}
	return art
}

func (p *pendingLoad) fail(err error) {
	p.cancelledAtRelease = p.ctx.Err() != nil
	p.done <- loadResult{err: err}
}

// fakeLoader hands every call to the test. When honourCancel is set a
// cancelled call returns ctx.Err() on its own; otherwise it waits for the
// test, modelling a load that finishes after being superseded.
type fakeLoader struct {
	calls        chan *pendingLoad
	shutdown     chan struct{}
	honourCancel bool
}

func newFakeLoader(honourCancel bool) *fakeLoader {
	return &fakeLoader{
		calls:        make(chan *pendingLoad, 64),
		shutdown:     make(chan struct{}),
		honourCancel: honourCancel,
	}
}

func (f *fakeLoader) Load(ctx context.Context, id Identity) (*Artifact, error) {
	p := &pendingLoad{id: id, ctx: ctx, done: make(chan loadResult, 1)}
	f.calls <- p
	var cancelled <-chan struct{}
	if f.honourCancel {
		cancelled = ctx.Done()
	}
	select {
	case r := <-p.done:
		return r.art, r.err
	case <-cancelled:
		return nil, ctx.Err()
	case <-f.shutdown:
		return nil, context.Canceled
	}
}

func (f *fakeLoader) next(t *testing.T) *pendingLoad {
	t.Helper()
	select {
	case p := <-f.calls:
		return p
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a load call")
		return nil
	}
}

func (f *fakeLoader) requireNoCall(t *testing.T) {
	t.Helper()
	select {
	case p := <-f.calls:
		t.Fatalf("unexpected load for %s", p.id)
	case <-time.After(20 * time.Millisecond):
	}
}

type harness struct {
	c       *Coordinator
	tr      *Transition
	metrics *Metrics
	loader  *fakeLoader
}

func newHarness(t *testing.T, honourCancel bool) *harness {
	t.Helper()
	loader := newFakeLoader(honourCancel)
	tr := NewTransition(2, DefaultBlurSigma)
	m := NewMetrics(nil)
	c := NewCoordinator(loader, tr, WithMetrics(m))
	t.Cleanup(func() {
		// Unblock loads the test left parked so Close can return.
		close(loader.shutdown)
		_ = c.Close()
	})
	return &harness{c: c, tr: tr, metrics: m, loader: loader}
}

// settle ticks until cond holds.
func (h *harness) settle(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		h.c.Update()
		return cond()
	}, 2*time.Second, time.Millisecond)
}

func (h *harness) finished(o Outcome) int {
	return int(testutil.ToFloat64(h.metrics.Finished.WithLabelValues(string(o))))
}

func (h *harness) started() int {
	return int(testutil.ToFloat64(h.metrics.Started))
}

func (h *harness) placeholders() int {
	return int(testutil.ToFloat64(h.metrics.Placeholders))
}

func (h *harness) currentIdentity() Identity {
	cur := h.tr.Current()
	if cur == nil {
		return Empty
	}
	return cur.Artifact.Identity()
}

func item(id int64, cover string) *playlist.Item {
	return &playlist.Item{
		ID: id,
		Beatmap: &playlist.Beatmap{
			ID:     id,
			Title:  cover,
			Covers: &playlist.Covers{Cover: cover},
		},
	}
}
