// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into the cell world. World coordinates are
// Y-up with the origin at the world's bottom-left corner; screen
// coordinates are Y-down. Pan is clamped so the view never leaves the
// world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level in screen pixels per world cell
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions in cells
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world at the given zoom.
func New(viewportW, viewportH, worldW, worldH, zoom float32) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   32.0,
	}
	c.MinZoom = c.minZoomFor(viewportW, viewportH)
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
	return c
}

// minZoomFor computes the zoom at which the viewport exactly covers the
// world's larger axis ratio, so zooming out never shows space beyond the
// world on both axes at once.
func (c *Camera) minZoomFor(viewportW, viewportH float32) float32 {
	minZoomX := viewportW / c.WorldW
	minZoomY := viewportH / c.WorldH
	if minZoomY > minZoomX {
		return minZoomY
	}
	return minZoomX
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	dx := wx - c.X
	dy := wy - c.Y

	sx = c.ViewportW/2 + dx*c.Zoom
	sy = c.ViewportH/2 - dy*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (c.ViewportH/2 - sy) / c.Zoom

	return c.X + dx, c.Y + dy
}

// IsVisible returns true if a square cell at (wx, wy) with the given
// half-extent could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, half float32) bool {
	dx := wx - c.X
	dy := wy - c.Y

	halfW := c.ViewportW/(2*c.Zoom) + half
	halfH := c.ViewportH/(2*c.Zoom) + half

	return absf(dx) <= halfW && absf(dy) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.minZoomFor(viewportW, viewportH)
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = clamp(1.0, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible
// area as (minX, minY, maxX, maxY).
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampPosition keeps the visible area inside the world on each axis, or
// centers the axis when the whole world fits on screen.
func (c *Camera) clampPosition() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	if halfW*2 >= c.WorldW {
		c.X = c.WorldW / 2
	} else {
		c.X = clamp(c.X, halfW, c.WorldW-halfW)
	}
	if halfH*2 >= c.WorldH {
		c.Y = c.WorldH / 2
	} else {
		c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
	}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
