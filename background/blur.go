package background

import "github.com/hajimehoshi/ebiten/v2"

// Blurred returns the artifact blurred with a separable gaussian, rendering
// it on first use and caching it for the given sigma.
func (a *Artifact) Blurred(shader *ebiten.Shader, sigma float64) *ebiten.Image {
	src := a.Image()
	if src == nil || shader == nil || sigma <= 0 {
		return src
	}
	if a.blurred != nil && a.blurFor == sigma {
		return a.blurred
	}
	if a.blurred != nil {
		a.blurred.Deallocate()
	}

	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return src
	}

	// Horizontal pass into scratch, then vertical into the cached result.
	scratch := ebiten.NewImage(w, h)
	blurPass(scratch, src, shader, sigma, 1, 0)
	out := ebiten.NewImage(w, h)
	blurPass(out, scratch, shader, sigma, 0, 1)
	scratch.Deallocate()

	a.blurred = out
	a.blurFor = sigma
	return out
}

func blurPass(dst, src *ebiten.Image, shader *ebiten.Shader, sigma float64, dx, dy float32) {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	op := &ebiten.DrawRectShaderOptions{
		Images: [4]*ebiten.Image{src, nil, nil, nil},
		Uniforms: map[string]interface{}{
			"Direction": []float32{dx, dy},
			"Sigma":     float32(sigma),
		},
	}
	dst.DrawRectShader(w, h, shader, op)
}
