// Package viz implements a gio-based visualizer for solved CBS
// instances: grid, agent paths, conflicts, and timeline playback.
// There is no CBS-tree side panel, toolbar, or undo/redo: a solution
// is loaded once from disk and replayed, never edited in place.
package viz

import (
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/orangedot/mapf-cbs/internal/viz/draw"
	"github.com/orangedot/mapf-cbs/internal/viz/interact"
	"github.com/orangedot/mapf-cbs/internal/viz/state"
	"github.com/orangedot/mapf-cbs/internal/viz/widgets"
)

// App is the visualizer application.
type App struct {
	state    *state.State
	theme    *material.Theme
	timeline *widgets.Timeline
	camera   *interact.Camera
	fitted   bool
}

// NewApp builds a visualizer for an already-solved instance.
func NewApp(st *state.State) *App {
	camera := interact.NewCamera()
	return &App{
		state:    st,
		theme:    material.NewTheme(),
		timeline: widgets.NewTimeline(st),
		camera:   camera,
	}
}

// Run drives the event loop, mirroring internal/vis/app.go's
// App.Run shape: key events for playback, frame events to redraw,
// and a continuous-redraw request while playback is active.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			if !a.fitted {
				a.camera.FitGrid(a.state.Grid.Width(), a.state.Grid.Height(), float32(e.Size.X), float32(e.Size.Y)-60, 20)
				a.fitted = true
			}

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.StepBack()
	case key.NameRightArrow:
		a.state.Playback.StepForward()
	case key.NameHome:
		a.state.Playback.Reset()
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 20, G: 20, B: 24, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.layoutGrid(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}

func (a *App) layoutGrid(gtx layout.Context) layout.Dimensions {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, a.camera)
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: a.camera,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			a.camera.HandleEvent(gtx, pe)
		}
	}
	area.Pop()

	draw.DrawGrid(gtx, a.state.Grid, a.camera)

	positions := a.state.CurrentPositions()
	for i := range a.state.Paths {
		col := draw.AgentColor(i)
		col.A = 100
		draw.DrawPathTrail(gtx, a.state.PathHistory(i), a.camera, col, 6)
	}
	draw.DrawAgents(gtx, positions, a.camera)

	for _, c := range a.state.Conflicts {
		draw.DrawConflict(gtx, c, a.camera)
	}

	return layout.Dimensions{Size: gtx.Constraints.Max}
}
