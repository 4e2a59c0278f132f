package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// roomUI is the overlay listing the bound room and its selection.
type roomUI struct {
	ui        *ebitenui.UI
	title     *widget.Text
	selection *widget.Text
	state     *widget.Text
}

// newRoomUI builds a small panel anchored bottom-left with a few controls. Like
// the rest of the overlay it uses colored nine-slices and the basic font so
// no theme assets are needed.
func newRoomUI(g *Game) *roomUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dim := color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	left := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})

	r := &roomUI{}
	r.title = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(left),
	)
	r.selection = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(left),
	)
	r.state = widget.NewText(
		widget.TextOpts.Text("", &face, dim),
		widget.TextOpts.WidgetOpts(left),
	)

	button := func(label string, fn func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) { fn() }),
		)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	buttons.AddChild(button("Next", g.nextItem))
	buttons.AddChild(button("Refresh", g.refresh))
	buttons.AddChild(button("Unbind", g.toggleRoom))
	buttons.AddChild(button("Clear", g.clearPlaylist))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionEnd}),
		),
	)
	panel.AddChild(r.title)
	panel.AddChild(r.selection)
	panel.AddChild(r.state)
	panel.AddChild(buttons)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	r.ui = &ebitenui.UI{Container: root}
	return r
}

func (r *roomUI) set(title, selection, state string) {
	r.title.Label = title
	r.selection.Label = selection
	r.state.Label = state
}
