package background

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/roombg/common"
	"github.com/milk9111/roombg/playlist"
)

const (
	// DefaultBackgroundScale is the zoom a background stack applies to its
	// screens; Screen undoes it because it never parallaxes.
	DefaultBackgroundScale = 1.2
	DefaultSlideFrames     = 30
)

// Scene is anything the host can tick and draw.
type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type ScreenOptions struct {
	FadeFrames      int
	BlurSigma       float64
	BackgroundScale float64
	SlideFrames     int
	Shader          *ebiten.Shader
}

func DefaultScreenOptions() ScreenOptions {
	return ScreenOptions{
		FadeFrames:      DefaultFadeFrames,
		BlurSigma:       DefaultBlurSigma,
		BackgroundScale: DefaultBackgroundScale,
		SlideFrames:     DefaultSlideFrames,
	}
}

// Screen shows the background for a room's current playlist item.
type Screen struct {
	opts       ScreenOptions
	room       *playlist.Room
	coord      *Coordinator
	transition *Transition
	log        *slog.Logger

	x     float64
	slide slide
}

type slide struct {
	from, to float64
	timer    int
	frames   int
}

func NewScreen(loader Loader, opts ScreenOptions, copts ...Option) *Screen {
	if opts.BackgroundScale <= 0 {
		opts.BackgroundScale = DefaultBackgroundScale
	}
	tr := NewTransition(opts.FadeFrames, opts.BlurSigma)
	tr.SetShader(opts.Shader)

	s := &Screen{opts: opts, transition: tr}
	s.coord = NewCoordinator(loader, tr, copts...)
	s.log = s.coord.log
	if m := s.coord.metrics; m != nil {
		tr.OnDestroy = func(*Artifact) { m.retired() }
	}
	return s
}

// Room returns the bound room.
func (s *Screen) Room() *playlist.Room {
	if s == nil {
		return nil
	}
	return s.room
}

// SetRoom binds the screen to r's playlist. Setting the same room is a no-op;
// a nil room unbinds and falls back to the placeholder.
func (s *Screen) SetRoom(r *playlist.Room) {
	if s == nil || r == s.room {
		return
	}
	s.room = r
	if r == nil {
		s.coord.SetSource(nil)
		return
	}
	s.log.Debug("background room bound", "room", r.ID.String(), "name", r.Name)
	s.coord.SetSource(r.Playlist)
}

// Coordinator exposes the swap coordinator.
func (s *Screen) Coordinator() *Coordinator {
	if s == nil {
		return nil
	}
	return s.coord
}

// Transition exposes the layer stack.
func (s *Screen) Transition() *Transition {
	if s == nil {
		return nil
	}
	return s.transition
}

func (s *Screen) Update() error {
	if s == nil {
		return nil
	}
	s.coord.Update()
	s.transition.Update()
	s.updateSlide()
	return nil
}

// Draw renders the stack over the full target.
func (s *Screen) Draw(screen *ebiten.Image) {
	s.DrawWith(screen, ebiten.GeoM{})
}

// DrawWith renders with the host transform applied last.
func (s *Screen) DrawWith(screen *ebiten.Image, host ebiten.GeoM) {
	if s == nil || screen == nil {
		return
	}
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	sc := s.Scale()

	var g ebiten.GeoM
	g.Translate(-w/2, -h/2)
	g.Scale(sc, sc)
	g.Translate(w/2+s.x, h/2)
	g.Concat(host)
	s.transition.Draw(screen, g)
}

// Scale is the correction that cancels the stack's zoom.
func (s *Screen) Scale() float64 {
	if s == nil || s.opts.BackgroundScale <= 0 {
		return 1
	}
	return 1 / s.opts.BackgroundScale
}

// X is the horizontal offset in screen pixels.
func (s *Screen) X() float64 {
	if s == nil {
		return 0
	}
	return s.x
}

// SetX positions the screen and stops any slide in progress.
func (s *Screen) SetX(x float64) {
	if s == nil {
		return
	}
	s.x = x
	s.slide = slide{}
}

// OnSuspend slides the screen back to rest while next takes over.
func (s *Screen) OnSuspend(next Scene) {
	if s == nil {
		return
	}
	s.moveToX(0, s.opts.SlideFrames)
}

// OnExit snaps the screen to rest. It never blocks the exit.
func (s *Screen) OnExit(next Scene) bool {
	if s == nil {
		return false
	}
	s.SetX(0)
	return false
}

func (s *Screen) moveToX(x float64, frames int) {
	if frames <= 0 {
		s.SetX(x)
		return
	}
	s.slide = slide{from: s.x, to: x, timer: frames, frames: frames}
}

func (s *Screen) updateSlide() {
	sl := &s.slide
	if sl.timer <= 0 {
		return
	}
	sl.timer--
	s.x = common.Lerp(sl.from, sl.to, 1-float64(sl.timer)/float64(sl.frames))
}

// Close stops loading and destroys every layer.
func (s *Screen) Close() error {
	if s == nil {
		return nil
	}
	err := s.coord.Close()
	s.transition.Clear()
	return err
}
