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

// DrawPath draws a full path as a connected line. Kept near-verbatim
// from internal/vis/draw/path.go's DrawPath, retyped to
// state.FloatPos.
func DrawPath(gtx layout.Context, path []state.FloatPos, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(path) < 2 {
		return
	}
	w := width * camera.Zoom / 24 // normalize against the default cell zoom
	for i := 0; i < len(path)-1; i++ {
		x1, y1 := camera.WorldToScreen(path[i].X, path[i].Y)
		x2, y2 := camera.WorldToScreen(path[i+1].X, path[i+1].Y)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawPathTrail draws a fading trail behind an agent, kept from
// internal/vis/draw/path.go's DrawPathTrail (fading alpha/width
// technique unchanged, retargeted at state.FloatPos history).
func DrawPathTrail(gtx layout.Context, history []state.FloatPos, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(history) < 2 {
		return
	}
	n := len(history)
	for i := 0; i < n-1; i++ {
		alpha := uint8(50 + float64(i)/float64(n)*150)
		col := baseColor
		col.A = alpha

		w := maxWidth * camera.Zoom / 24 * float32(0.3+0.7*float64(i)/float64(n))

		x1, y1 := camera.WorldToScreen(history[i].X, history[i].Y)
		x2, y2 := camera.WorldToScreen(history[i+1].X, history[i+1].Y)
		drawPathSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

func drawPathSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
