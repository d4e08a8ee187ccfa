// Package draw provides rendering functions for the grid visualizer.
package draw

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/orangedot/mapf-cbs/internal/gridworld"
	"github.com/orangedot/mapf-cbs/internal/viz/interact"
)

// Colors for grid cells, adapted from internal/vis/draw/graph.go's
// vertex palette (blocked/passable replacing pad/corridor/default).
var (
	ColorCellPassable = color.NRGBA{R: 100, G: 120, B: 140, A: 255}
	ColorCellBlocked  = color.NRGBA{R: 40, G: 40, B: 45, A: 255}
	ColorCellGrid     = color.NRGBA{R: 80, G: 90, B: 100, A: 180}
)

// DrawGrid renders every cell of g as a filled square, blocked cells
// darker than passable ones, with a 1px outline between cells.
// Adapted from internal/vis/draw/graph.go's DrawGraph (cell fill
// instead of vertex/edge drawing — a grid has no separate edge
// geometry to render).
func DrawGrid(gtx layout.Context, g *gridworld.Grid, camera *interact.Camera) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := gridworld.Coord{X: uint16(x), Y: uint16(y)}
			col := ColorCellPassable
			if !g.Passable(c) {
				col = ColorCellBlocked
			}
			drawCell(gtx, float64(x), float64(y), camera, col)
		}
	}
}

func drawCell(gtx layout.Context, worldX, worldY float64, camera *interact.Camera, col color.NRGBA) {
	x1, y1 := camera.WorldToScreen(worldX, worldY)
	x2, y2 := camera.WorldToScreen(worldX+1, worldY+1)

	inset := float32(0.5)
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+inset, y1+inset))
	path.LineTo(f32.Pt(x2-inset, y1+inset))
	path.LineTo(f32.Pt(x2-inset, y2-inset))
	path.LineTo(f32.Pt(x1+inset, y2-inset))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
