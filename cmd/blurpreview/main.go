package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/roombg/assets"
	"github.com/milk9111/roombg/background"
	"github.com/milk9111/roombg/common"
	"github.com/milk9111/roombg/cover"
)

const (
	screenWidth  = common.BaseWidth / 2
	screenHeight = common.BaseHeight / 2
	sigmaStep    = 1.0
)

// Game previews one cover with the background blur so sigma values can be
// tuned by eye.
type Game struct {
	art    *background.Artifact
	shader *ebiten.Shader
	sigma  float64
	blur   bool
}

func NewGame(art *background.Artifact, shader *ebiten.Shader, sigma float64) *Game {
	sigma = min(max(sigma, 0), background.MaxBlurSigma)
	return &Game{art: art, shader: shader, sigma: sigma, blur: shader != nil}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.sigma = min(g.sigma+sigmaStep, background.MaxBlurSigma)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.sigma = max(g.sigma-sigmaStep, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.blur = !g.blur && g.shader != nil
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	img := g.art.Image()
	if g.blur && g.sigma > 0 {
		img = g.art.Blurred(g.shader, g.sigma)
	}
	if img != nil {
		sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
		screen.DrawImage(img, op)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nsigma %.0f blur %v (up/down, B)", g.art.Identity(), g.sigma, g.blur))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	coversDir := flag.String("covers", "covers", "covers directory")
	ref := flag.String("cover", "", "cover reference to preview")
	sigma := flag.Float64("sigma", background.DefaultBlurSigma, "initial blur sigma")
	flag.Parse()

	if *ref == "" {
		log.Fatal("blurpreview: -cover is required")
	}

	loader := cover.NewLoader(*coversDir, common.BaseWidth, common.BaseHeight)
	art, err := loader.Load(context.Background(), background.CoverIdentity(*ref))
	if err != nil {
		log.Fatalf("blurpreview: %v", err)
	}

	shader, err := assets.BlurShader()
	if err != nil {
		log.Printf("blur shader unavailable: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Cover blur preview")
	if err := ebiten.RunGame(NewGame(art, shader, *sigma)); err != nil {
		log.Fatal(err)
	}
}
