package background

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/roombg/common"
)

const (
	// DefaultFadeFrames is 250ms at 60 TPS.
	DefaultFadeFrames = 15
	DefaultBlurSigma  = 10.0
	// MaxBlurSigma keeps three sigma inside the 30 taps per side that
	// blur.kage samples.
	MaxBlurSigma = 10.0
)

type LayerState int

const (
	LayerCurrent LayerState = iota
	LayerRetiring
	LayerDestroyed
)

func (s LayerState) String() string {
	switch s {
	case LayerCurrent:
		return "current"
	case LayerRetiring:
		return "retiring"
	case LayerDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Layer is one artifact on the background stack.
type Layer struct {
	Artifact *Artifact
	Depth    int
	Alpha    float64
	Blur     float64
	State    LayerState

	timer int
}

// Transition owns the displayed artifacts. Only the game goroutine touches
// it, so the current layer is never written concurrently.
type Transition struct {
	fadeFrames int
	blur       float64
	shader     *ebiten.Shader

	current  *Layer
	retiring []*Layer

	// OnDestroy runs after a retired artifact has been disposed.
	OnDestroy func(a *Artifact)
}

func NewTransition(fadeFrames int, blur float64) *Transition {
	if fadeFrames < 0 {
		fadeFrames = 0
	}
	blur = min(max(blur, 0), MaxBlurSigma)
	return &Transition{fadeFrames: fadeFrames, blur: blur}
}

// SetShader installs the blur shader. Without one, layers draw unblurred.
func (t *Transition) SetShader(s *ebiten.Shader) {
	if t == nil {
		return
	}
	t.shader = s
}

// Commit makes a the current artifact. The previous current layer finishes
// its fade-in, drops one depth below a and fades out; it is destroyed once
// the fade completes. Commit never reinstates a retiring layer.
func (t *Transition) Commit(a *Artifact) {
	if t == nil || a == nil {
		return
	}

	depth := 0
	if prev := t.current; prev != nil {
		depth = prev.Depth + 1
		prev.Alpha = 1
		prev.State = LayerRetiring
		prev.timer = t.fadeFrames
		t.retiring = append(t.retiring, prev)
	}

	t.current = &Layer{
		Artifact: a,
		Depth:    depth,
		Blur:     t.blur,
		State:    LayerCurrent,
		timer:    t.fadeFrames,
	}
	if t.fadeFrames == 0 {
		t.current.Alpha = 1
	}
}

// Update advances fades by one tick and destroys finished retirees.
func (t *Transition) Update() {
	if t == nil {
		return
	}

	if cur := t.current; cur != nil && cur.timer > 0 {
		cur.timer--
		cur.Alpha = common.Clamp01(1 - float64(cur.timer)/float64(t.fadeFrames))
	}

	kept := t.retiring[:0]
	for _, ly := range t.retiring {
		if ly.timer > 0 {
			ly.timer--
		}
		if t.fadeFrames > 0 {
			ly.Alpha = common.Clamp01(float64(ly.timer) / float64(t.fadeFrames))
		} else {
			ly.Alpha = 0
		}
		if ly.timer > 0 {
			kept = append(kept, ly)
			continue
		}
		t.destroy(ly)
	}
	for i := len(kept); i < len(t.retiring); i++ {
		t.retiring[i] = nil
	}
	t.retiring = kept
}

// Current returns the current layer, nil before the first commit.
func (t *Transition) Current() *Layer {
	if t == nil {
		return nil
	}
	return t.current
}

// Retiring returns the layers still fading out.
func (t *Transition) Retiring() []*Layer {
	if t == nil {
		return nil
	}
	return append([]*Layer(nil), t.retiring...)
}

// Layers returns every live layer in draw order, lowest depth first.
func (t *Transition) Layers() []*Layer {
	if t == nil {
		return nil
	}
	out := append([]*Layer(nil), t.retiring...)
	if t.current != nil {
		out = append(out, t.current)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

// Clear destroys every layer, current included.
func (t *Transition) Clear() {
	if t == nil {
		return
	}
	for _, ly := range t.retiring {
		t.destroy(ly)
	}
	t.retiring = nil
	if t.current != nil {
		t.current.State = LayerDestroyed
		t.current.Artifact.Dispose()
		t.current = nil
	}
}

func (t *Transition) destroy(ly *Layer) {
	ly.State = LayerDestroyed
	ly.Alpha = 0
	ly.Artifact.Dispose()
	if t.OnDestroy != nil {
		t.OnDestroy(ly.Artifact)
	}
}

// Draw renders all layers filling dst. geo is applied after the fill
// transform, letting the host position and scale the stack.
func (t *Transition) Draw(dst *ebiten.Image, geo ebiten.GeoM) {
	if t == nil || dst == nil {
		return
	}
	dw := float64(dst.Bounds().Dx())
	dh := float64(dst.Bounds().Dy())
	for _, ly := range t.Layers() {
		if ly.Alpha <= 0 {
			continue
		}
		img := ly.Artifact.Image()
		if ly.Blur > 0 && t.shader != nil {
			img = ly.Artifact.Blurred(t.shader, ly.Blur)
		}
		if img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM = fillGeoM(img, dw, dh)
		op.GeoM.Concat(geo)
		op.ColorScale.ScaleAlpha(float32(ly.Alpha))
		dst.DrawImage(img, op)
	}
}

// fillGeoM scales img to cover a dw x dh area, centred.
func fillGeoM(img *ebiten.Image, dw, dh float64) ebiten.GeoM {
	var g ebiten.GeoM
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw <= 0 || ih <= 0 {
		return g
	}
	s := dw / iw
	if sy := dh / ih; sy > s {
		s = sy
	}
	g.Scale(s, s)
	g.Translate((dw-iw*s)/2, (dh-ih*s)/2)
	return g
}
