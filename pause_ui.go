package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/ecs/system"
	"golang.org/x/image/font/basicfont"
)

// pauseMenu keeps the buttons whose labels follow game state.
type pauseMenu struct {
	game  *Game
	music *widget.Button
	cast  *widget.Button
	debug *widget.Button
}

func (m *pauseMenu) refresh() {
	if m == nil || m.game == nil || m.game.world == nil {
		return
	}
	music := "Music: On"
	if system.MusicMuted(m.game.world) {
		music = "Music: Off"
	}
	setLabel(m.music, music)
	setLabel(m.cast, fmt.Sprintf("Cast: %s", m.game.CastShape()))
	debug := "Debug: Off"
	if m.game.debug {
		debug = "Debug: On"
	}
	setLabel(m.debug, debug)
}

func setLabel(btn *widget.Button, label string) {
	if btn == nil {
		return
	}
	if text := btn.Text(); text != nil {
		text.Label = label
	}
}

// NewPauseUI builds a centered pause menu. Buttons use colored nine-slices
// and the built-in basic font, so no theme assets are needed.
func NewPauseUI(g *Game) (*ebitenui.UI, *pauseMenu) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	menu := &pauseMenu{game: g}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
				menu.refresh()
			}),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	resume := button("Resume", func() { g.SetPaused(false) })
	menu.music = button("Music: On", func() { system.ToggleMusic(g.world) })
	menu.cast = button("Cast: circle", g.CycleCast)
	menu.debug = button("Debug: Off", func() { g.debug = !g.debug })
	restart := button("Restart level", func() {
		g.RequestReload()
		g.handleReload()
		g.SetPaused(false)
	})
	quit := button("Quit", func() { g.quit = true })

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(g.spec.ScreenWidth/3, g.spec.ScreenHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resume)
	panel.AddChild(menu.music)
	panel.AddChild(menu.cast)
	panel.AddChild(menu.debug)
	panel.AddChild(restart)
	panel.AddChild(quit)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	menu.refresh()
	return &ebitenui.UI{Container: root}, menu
}
