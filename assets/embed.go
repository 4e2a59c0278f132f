package assets

import (
	"embed"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.kage
var assetsFS embed.FS

const (
	placeholderWidth  = 640
	placeholderHeight = 360
)

var (
	placeholderOnce sync.Once
	placeholderImg  image.Image
)

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadShader compiles an embedded Kage shader.
func LoadShader(path string) (*ebiten.Shader, error) {
	src, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read shader %q: %w", path, err)
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("assets: compile shader %q: %w", path, err)
	}
	return sh, nil
}

// BlurShader compiles the separable gaussian used for backgrounds.
func BlurShader() (*ebiten.Shader, error) {
	return LoadShader("blur.kage")
}

// Placeholder returns the background shown when nothing is selected. The
// image is rendered once and shared; callers must not modify it.
func Placeholder() image.Image {
	placeholderOnce.Do(func() {
		placeholderImg = renderPlaceholder(placeholderWidth, placeholderHeight)
	})
	return placeholderImg
}

func renderPlaceholder(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	grad := gg.NewLinearGradient(0, 0, float64(w), float64(h))
	grad.AddColorStop(0, color.RGBA{R: 0x2a, G: 0x2d, B: 0x3e, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x14, G: 0x15, B: 0x1c, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	// Faint triangles over the gradient.
	dc.SetRGBA(1, 1, 1, 0.04)
	for i := 0; i < 6; i++ {
		cx := float64(w) * (0.1 + 0.16*float64(i))
		cy := float64(h) * (0.3 + 0.08*float64(i%3))
		size := float64(h) * (0.18 + 0.05*float64(i%2))
		dc.DrawRegularPolygon(3, cx, cy, size, 0)
		dc.Fill()
	}
	return dc.Image()
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
