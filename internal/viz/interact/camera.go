// Package interact handles pan/zoom camera state for the grid view.
// Near-verbatim from internal/vis/interact/zoom.go: the world<->screen
// transform and its pan/zoom/fit math are domain-independent, whether
// the world is a graph of vertices or a grid of cells.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

// Camera manages view transformation (pan and zoom) over the grid.
type Camera struct {
	OffsetX float32
	OffsetY float32
	Zoom    float32

	dragging   bool
	dragStartX float32
	dragStartY float32
	lastX      float32
	lastY      float32
}

// NewCamera creates a camera at the default view.
func NewCamera() *Camera {
	return &Camera{OffsetX: 40, OffsetY: 40, Zoom: 24}
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX = 40
	c.OffsetY = 40
	c.Zoom = 24
}

// WorldToScreen converts grid coordinates to screen pixels.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen pixels back to grid coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes a pointer event for drag-to-pan and
// scroll-to-zoom.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
			c.dragStartX = ev.Position.X
			c.dragStartY = ev.Position.Y
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y != 0 {
			worldX, worldY := c.ScreenToWorld(ev.Position.X, ev.Position.Y)

			zoomFactor := float32(1.1)
			if ev.Scroll.Y > 0 {
				c.Zoom /= zoomFactor
			} else {
				c.Zoom *= zoomFactor
			}
			c.clampZoom()

			newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
			c.OffsetX += ev.Position.X - newScreenX
			c.OffsetY += ev.Position.Y - newScreenY
		}
	}
}

func (c *Camera) clampZoom() {
	if c.Zoom < 4 {
		c.Zoom = 4
	}
	if c.Zoom > 128 {
		c.Zoom = 128
	}
}

// FitGrid sizes and centers the camera so a rows x cols grid fills the
// given screen dimensions with margin.
func (c *Camera) FitGrid(cols, rows int, screenWidth, screenHeight float32, margin float32) {
	if cols <= 0 || rows <= 0 {
		return
	}
	availW := screenWidth - 2*margin
	availH := screenHeight - 2*margin

	zoomX := availW / float32(cols)
	zoomY := availH / float32(rows)
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.clampZoom()

	worldCenterX := float64(cols) / 2
	worldCenterY := float64(rows) / 2
	c.OffsetX = screenWidth/2 - float32(worldCenterX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldCenterY)*c.Zoom
}
