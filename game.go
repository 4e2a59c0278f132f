package main

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/roombg/assets"
	"github.com/milk9111/roombg/background"
	"github.com/milk9111/roombg/common"
	"github.com/milk9111/roombg/config"
	"github.com/milk9111/roombg/cover"
	"github.com/milk9111/roombg/playlist"
	"github.com/prometheus/client_golang/prometheus"
	"golang.design/x/clipboard"
)

// suspendOffset is how far the screen is pushed before a suspend slide.
const suspendOffset = -200

type Game struct {
	frames int

	cfg     config.Config
	log     *slog.Logger
	room    *playlist.Room
	bound   bool
	screen  *background.Screen
	watcher *playlist.Watcher
	overlay *roomUI
	showUI  bool
	clip    bool
}

func NewGame(cfg config.Config, log *slog.Logger, reg prometheus.Registerer) *Game {
	opts := cfg.ScreenOptions()
	if sh, err := assets.BlurShader(); err != nil {
		log.Warn("blur shader unavailable, drawing unblurred", "error", err)
	} else {
		opts.Shader = sh
	}

	loader := cover.NewLoader(cfg.CoversDir, common.BaseWidth, common.BaseHeight, cover.WithLogger(log))
	placeholder := func() *background.Artifact {
		return background.NewArtifact(background.Empty, assets.Placeholder())
	}
	screen := background.NewScreen(loader, opts,
		background.WithLogger(log),
		background.WithMetrics(background.NewMetrics(reg)),
		background.WithPlaceholder(placeholder),
	)

	g := &Game{
		cfg:    cfg,
		log:    log,
		screen: screen,
		showUI: true,
	}
	g.room = g.loadRoom()
	g.bindRoom(true)

	if cfg.Watch && cfg.RoomFile != "" {
		w, err := playlist.NewWatcher(cfg.RoomFile)
		if err != nil {
			log.Warn("room file watch disabled", "file", cfg.RoomFile, "error", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", "error", err)
	} else {
		g.clip = true
	}

	g.overlay = newRoomUI(g)
	return g
}

func (g *Game) loadRoom() *playlist.Room {
	spec, err := playlist.LoadRoomSpec(g.cfg.RoomFile)
	if err != nil {
		g.log.Warn("room file not loaded, starting empty", "file", g.cfg.RoomFile, "error", err)
		return playlist.NewRoom("offline")
	}
	room := playlist.NewRoomFromSpec(spec)
	g.log.Info("room loaded", "room", room.ID.String(), "name", room.Name, "items", room.Playlist.Len())
	return room
}

func (g *Game) reloadRoom(path string) {
	spec, err := playlist.LoadRoomSpec(path)
	if err != nil {
		g.log.Warn("room reload failed", "file", path, "error", err)
		return
	}
	g.room.Apply(spec)
	g.log.Info("room reloaded", "file", path, "items", g.room.Playlist.Len())
}

func (g *Game) bindRoom(bound bool) {
	g.bound = bound
	if bound {
		g.screen.SetRoom(g.room)
		return
	}
	g.screen.SetRoom(nil)
}

func (g *Game) nextItem()      { g.room.Playlist.Rotate() }
func (g *Game) clearPlaylist() { g.room.Playlist.Clear() }
func (g *Game) refresh()       { g.screen.Coordinator().Refresh() }
func (g *Game) toggleRoom()    { g.bindRoom(!g.bound) }

func (g *Game) suspend() {
	g.screen.SetX(suspendOffset)
	g.screen.OnSuspend(g)
}

func (g *Game) copyCover() {
	if !g.clip {
		return
	}
	id, ok := g.screen.Coordinator().Committed()
	if !ok || id.IsEmpty() {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(id.Cover()))
}

func (g *Game) Update() error {
	g.frames++

	g.drainWatcher()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.nextItem()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.clearPlaylist()
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.toggleRoom()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.refresh()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.suspend()
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.copyCover()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.showUI = !g.showUI
	}

	if err := g.screen.Update(); err != nil {
		return err
	}

	if g.showUI {
		g.overlay.set(g.status())
		g.overlay.ui.Update()
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			g.reloadRoom(path)
		case err := <-g.watcher.Errors:
			g.log.Warn("room file watch error", "error", err)
		default:
			return
		}
	}
}

func (g *Game) status() (string, string, string) {
	title := "no room"
	if g.bound {
		title = fmt.Sprintf("%s (%d items)", g.room.Name, g.room.Playlist.Len())
	}
	selection := "nothing selected"
	if g.bound {
		if it := g.room.Playlist.First(); it != nil {
			selection = it.Title()
		}
	}
	c := g.screen.Coordinator()
	state := c.State().String()
	if c.State() == background.StateLoading {
		state += " " + c.Target().String()
	} else if id, ok := c.Committed(); ok {
		state += " " + id.String()
	}
	return title, selection, state
}

func (g *Game) Draw(screen *ebiten.Image) {
	// The stack zooms its screens; the background screen cancels it.
	var stack ebiten.GeoM
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	stack.Translate(-w/2, -h/2)
	stack.Scale(g.cfg.BackgroundScale, g.cfg.BackgroundScale)
	stack.Translate(w/2, h/2)
	g.screen.DrawWith(screen, stack)

	if g.showUI {
		g.overlay.ui.Draw(screen)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases the watcher and background resources.
func (g *Game) Close() error {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	return g.screen.Close()
}
