package background

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Artifact is a loaded background bound to one identity. The decoded pixels
// are produced off the game goroutine; the GPU image is created lazily on
// first draw and released by Dispose.
type Artifact struct {
	id  Identity
	src image.Image

	img     *ebiten.Image
	blurred *ebiten.Image
	blurFor float64

	disposed bool
}

func NewArtifact(id Identity, src image.Image) *Artifact {
	return &Artifact{id: id, src: src}
}

func (a *Artifact) Identity() Identity {
	if a == nil {
		return Empty
	}
	return a.id
}

// Source returns the decoded image, nil for a blank artifact.
func (a *Artifact) Source() image.Image {
	if a == nil {
		return nil
	}
	return a.src
}

// Disposed reports whether the artifact has been destroyed.
func (a *Artifact) Disposed() bool {
	return a == nil || a.disposed
}

// Image uploads the source on first use.
func (a *Artifact) Image() *ebiten.Image {
	if a == nil || a.disposed || a.src == nil {
		return nil
	}
	if a.img == nil {
		a.img = ebiten.NewImageFromImage(a.src)
	}
	return a.img
}

// Dispose releases GPU memory. The artifact draws nothing afterwards.
func (a *Artifact) Dispose() {
	if a == nil || a.disposed {
		return
	}
	a.disposed = true
	if a.blurred != nil {
		a.blurred.Deallocate()
		a.blurred = nil
	}
	if a.img != nil {
		a.img.Deallocate()
		a.img = nil
	}
}

// Loader produces artifacts off the game goroutine. Implementations should
// return promptly with ctx.Err() once ctx is cancelled.
type Loader interface {
	Load(ctx context.Context, id Identity) (*Artifact, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, id Identity) (*Artifact, error)

func (f LoaderFunc) Load(ctx context.Context, id Identity) (*Artifact, error) {
	return f(ctx, id)
}
