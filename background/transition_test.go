package background

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionCommit(t *testing.T) {
	tr := NewTransition(3, DefaultBlurSigma)
	a := NewArtifact(coverA, nil)
	b := NewArtifact(coverB, nil)

	tr.Commit(a)
	cur := tr.Current()
	require.NotNil(t, cur)
	assert.Equal(t, 0, cur.Depth)
	assert.Equal(t, LayerCurrent, cur.State)
	assert.Equal(t, DefaultBlurSigma, cur.Blur)
	assert.Zero(t, cur.Alpha)

	tr.Update()
	assert.InDelta(t, 1.0/3, cur.Alpha, 1e-9)

	tr.Commit(b)
	retiring := tr.Retiring()
	require.Len(t, retiring, 1)
	old := retiring[0]
	assert.Same(t, a, old.Artifact)
	assert.Equal(t, LayerRetiring, old.State)
	assert.Equal(t, 1.0, old.Alpha, "retiring layer finishes its fade-in first")
	assert.Equal(t, tr.Current().Depth-1, old.Depth)
	assert.Same(t, b, tr.Current().Artifact)

	layers := tr.Layers()
	require.Len(t, layers, 2)
	assert.Same(t, a, layers[0].Artifact, "new artifact stacks above")
	assert.Same(t, b, layers[1].Artifact)
}

func TestTransitionRetireesAreDestroyed(t *testing.T) {
	tr := NewTransition(3, 0)
	var destroyed []*Artifact
	tr.OnDestroy = func(a *Artifact) { destroyed = append(destroyed, a) }

	a := NewArtifact(coverA, nil)
	b := NewArtifact(coverB, nil)
	tr.Commit(a)
	tr.Commit(b)

	for i := 0; i < 2; i++ {
		tr.Update()
		require.Len(t, tr.Retiring(), 1)
		assert.False(t, a.Disposed())
	}
	assert.InDelta(t, 1.0/3, tr.Retiring()[0].Alpha, 1e-9)

	tr.Update()
	assert.Empty(t, tr.Retiring())
	assert.True(t, a.Disposed())
	assert.Equal(t, []*Artifact{a}, destroyed)
	assert.False(t, b.Disposed())
	assert.Equal(t, 1.0, tr.Current().Alpha)
}

func TestTransitionReentrantCommits(t *testing.T) {
	tr := NewTransition(4, DefaultBlurSigma)
	arts := []*Artifact{
		NewArtifact(CoverIdentity("1"), nil),
		NewArtifact(CoverIdentity("2"), nil),
		NewArtifact(CoverIdentity("3"), nil),
		NewArtifact(CoverIdentity("4"), nil),
	}
	for _, a := range arts {
		tr.Commit(a)
	}

	assert.Len(t, tr.Retiring(), 3)
	current := 0
	depths := make([]int, 0, 4)
	for _, ly := range tr.Layers() {
		if ly.State == LayerCurrent {
			current++
		}
		depths = append(depths, ly.Depth)
	}
	assert.Equal(t, 1, current)
	assert.Equal(t, []int{0, 1, 2, 3}, depths)
	assert.Same(t, arts[3], tr.Current().Artifact)

	for i := 0; i < 4; i++ {
		tr.Update()
	}
	assert.Empty(t, tr.Retiring())
	for _, a := range arts[:3] {
		assert.True(t, a.Disposed())
	}
}

func TestTransitionZeroFade(t *testing.T) {
	tr := NewTransition(0, DefaultBlurSigma)
	a := NewArtifact(coverA, nil)
	tr.Commit(a)
	assert.Equal(t, 1.0, tr.Current().Alpha)

	tr.Commit(NewArtifact(coverB, nil))
	tr.Update()
	assert.Empty(t, tr.Retiring())
	assert.True(t, a.Disposed())
}

func TestTransitionClear(t *testing.T) {
	tr := NewTransition(5, 0)
	a := NewArtifact(coverA, nil)
	b := NewArtifact(coverB, nil)
	tr.Commit(a)
	tr.Commit(b)

	tr.Clear()
	assert.Nil(t, tr.Current())
	assert.Empty(t, tr.Layers())
	assert.True(t, a.Disposed())
	assert.True(t, b.Disposed())
}

func TestTransitionClampsBlur(t *testing.T) {
	tr := NewTransition(1, 30)
	tr.Commit(NewArtifact(coverA, nil))
	assert.Equal(t, MaxBlurSigma, tr.Current().Blur)

	tr = NewTransition(1, -2)
	tr.Commit(NewArtifact(coverA, nil))
	assert.Zero(t, tr.Current().Blur)
}

func TestTransitionIgnoresNil(t *testing.T) {
	var nilTr *Transition
	nilTr.Commit(NewArtifact(coverA, nil))
	nilTr.Update()
	assert.Nil(t, nilTr.Current())

	tr := NewTransition(2, 0)
	tr.Commit(nil)
	assert.Nil(t, tr.Current())
}
