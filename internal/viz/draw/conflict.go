package draw

import (
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/orangedot/mapf-cbs/internal/conflict"
	"github.com/orangedot/mapf-cbs/internal/viz/interact"
)

// Conflict colors, kept from internal/vis/draw/conflict.go.
var (
	ColorConflictVertex = color.NRGBA{R: 255, G: 80, B: 80, A: 200}
	ColorConflictEdge   = color.NRGBA{R: 255, G: 150, B: 80, A: 200}
)

// DrawConflict draws a vertex or swap conflict indicator, pulsing
// continuously. Re-grounded on internal/conflict.Conflict in place of
// the original's algo.Conflict (Vertex/EdgeFrom/EdgeTo fields):
// ConstraintI's coordinate is the shared location for a vertex
// conflict, or the destination cell for a swap, with ConstraintJ's
// coordinate as the crossing edge's other endpoint.
func DrawConflict(gtx layout.Context, c conflict.Conflict, camera *interact.Camera) {
	pulse := float32(math.Sin(float64(time.Now().UnixMilli())/200.0)*0.3 + 0.7)

	if c.Kind == conflict.Swap {
		drawSwapConflict(gtx, c, camera, pulse)
		return
	}

	screenX, screenY := camera.WorldToScreen(float64(c.ConstraintI.Coord.X), float64(c.ConstraintI.Coord.Y))
	radius := 0.5 * camera.Zoom * pulse
	DrawCircleOutline(gtx, screenX, screenY, radius, ColorConflictVertex, 0.1*camera.Zoom)

	innerRadius := radius * 0.4 * pulse
	drawFilledCircle(gtx, screenX, screenY, innerRadius, ColorConflictVertex)
}

func drawSwapConflict(gtx layout.Context, c conflict.Conflict, camera *interact.Camera, pulse float32) {
	x1, y1 := camera.WorldToScreen(float64(c.ConstraintI.Coord.X), float64(c.ConstraintI.Coord.Y))
	x2, y2 := camera.WorldToScreen(float64(c.ConstraintJ.Coord.X), float64(c.ConstraintJ.Coord.Y))

	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	radius := 0.4 * camera.Zoom * pulse
	DrawCircleOutline(gtx, midX, midY, radius, ColorConflictEdge, 0.08*camera.Zoom)

	lineLen := radius * 0.7
	drawConflictX(gtx, midX, midY, lineLen)

	col := ColorConflictEdge
	col.A = uint8(float32(col.A) * pulse)
	drawPathSegment(gtx, x1, y1, x2, y2, 0.15*camera.Zoom, col)
}

func drawConflictX(gtx layout.Context, cx, cy, size float32) {
	width := float32(3)
	for _, angle := range []float64{45, 135} {
		rad := angle * math.Pi / 180
		dx := float32(math.Cos(rad)) * size
		dy := float32(math.Sin(rad)) * size
		drawPathSegment(gtx, cx-dx, cy-dy, cx+dx, cy+dy, width, ColorConflictEdge)
	}
}

// DrawCircleOutline draws a ring (outer circle minus an inner hole),
// kept from internal/vis/draw/graph.go.
func DrawCircleOutline(gtx layout.Context, centerX, centerY, radius float32, col color.NRGBA, strokeWidth float32) {
	var outerPath clip.Path
	outerPath.Begin(gtx.Ops)
	outerPath.Move(f32.Pt(centerX+radius, centerY))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + radius*float32(math.Cos(angle))
		y := centerY + radius*float32(math.Sin(angle))
		outerPath.Line(f32.Pt(x-outerPath.Pos().X, y-outerPath.Pos().Y))
	}
	outerPath.Close()

	innerR := radius - strokeWidth
	if innerR < 0 {
		innerR = 0
	}
	outerPath.Move(f32.Pt(centerX+innerR-outerPath.Pos().X, centerY-outerPath.Pos().Y))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + innerR*float32(math.Cos(angle))
		y := centerY + innerR*float32(math.Sin(angle))
		outerPath.Line(f32.Pt(x-outerPath.Pos().X, y-outerPath.Pos().Y))
	}
	outerPath.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: outerPath.End()}.Op())
}
