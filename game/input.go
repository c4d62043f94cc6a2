package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/world"
)

// pickerWidth is the screen area reserved for the type picker; brush input
// is ignored there.
const pickerWidth = 180

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.stepOnce = true
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > 1 {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < 10 {
		g.speed++
	}

	if rl.IsKeyPressed(rl.KeyR) {
		if err := g.ReloadDefs(); err != nil {
			slog.Error("failed to reload particle defs", "error", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.sim.Clear()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		if err := g.SaveScene(g.savePath()); err != nil {
			slog.Error("failed to save scene", "error", err)
		}
	}

	g.handleCamera()
	g.handleBrush()
}

// handleCamera applies pan and zoom input.
func (g *Game) handleCamera() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel > 0 {
			g.cam.ZoomBy(1.1)
		} else {
			g.cam.ZoomBy(1 / 1.1)
		}
	}

	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		g.cam.Pan(-delta.X, -delta.Y)
	}

	const panSpeed = 8
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}
}

// handleBrush spawns or erases particles under the cursor.
func (g *Game) handleBrush() {
	mouse := rl.GetMousePosition()
	if mouse.X > float32(rl.GetScreenWidth()-pickerWidth) {
		g.erasing = false
		return
	}

	spawn := rl.IsMouseButtonDown(rl.MouseLeftButton)
	erase := rl.IsMouseButtonDown(rl.MouseRightButton)
	g.erasing = erase
	if !spawn && !erase {
		return
	}

	center := g.mouseCell(mouse.X, mouse.Y)
	name := ""
	if spawn && len(g.typeNames) > 0 {
		name = g.typeNames[g.brushType]
	}

	rad := g.brushRadius
	for dy := -rad; dy <= rad; dy++ {
		for dx := -rad; dx <= rad; dx++ {
			if dx*dx+dy*dy > rad*rad {
				continue
			}
			pos := world.Cell{X: center.X + dx, Y: center.Y + dy}
			if erase {
				g.sim.Erase(pos)
				continue
			}
			// Out-of-bounds and occupied cells are skipped silently.
			g.sim.Spawn(pos, name)
		}
	}
}

// mouseCell converts a screen position to a world cell.
func (g *Game) mouseCell(sx, sy float32) world.Cell {
	wx, wy := g.cam.ScreenToWorld(sx, sy)
	min, _ := g.sim.Map().Bounds()
	return world.Cell{
		X: min.X + int(math.Floor(float64(wx))),
		Y: min.Y + int(math.Floor(float64(wy))),
	}
}
