package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/orangedot/mapf-cbs/internal/viz/interact"
	"github.com/orangedot/mapf-cbs/internal/viz/state"
)

// AgentColor derives a deterministic, well-separated color from an
// agent's index via a golden-angle hue rotation, replacing
// internal/vis/draw/robot.go's per-robot-type palette: a CBS agent has
// no type, only an identity, so color is what distinguishes it on
// screen.
func AgentColor(agentIndex int) color.NRGBA {
	const goldenAngle = 137.50776
	hue := math.Mod(float64(agentIndex)*goldenAngle, 360)
	return hsvToNRGBA(hue, 0.65, 0.95)
}

func hsvToNRGBA(h, s, v float64) color.NRGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

// DrawAgent draws one agent as a filled circle, dropping
// internal/vis/draw/robot.go's per-type shape dispatch (square,
// rectangle, quadcopter) — a plain MAPF agent is one shape, colored by
// id: a plain MAPF agent is a point in space at each tick, nothing more.
func DrawAgent(gtx layout.Context, pos state.FloatPos, agentIndex int, camera *interact.Camera) {
	screenX, screenY := camera.WorldToScreen(pos.X, pos.Y)
	radius := 0.32 * camera.Zoom
	drawFilledCircle(gtx, screenX, screenY, radius, AgentColor(agentIndex))
}

// DrawAgents draws every agent at its given current position.
func DrawAgents(gtx layout.Context, positions []state.FloatPos, camera *interact.Camera) {
	for i, pos := range positions {
		DrawAgent(gtx, pos, i, camera)
	}
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
