package game

import (
	"fmt"
	"image/color"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/world"
)

// background is the empty-cell color.
var background = color.RGBA{R: 12, G: 12, B: 16, A: 255}

// renderer draws the cell map as a single streamed texture: one pixel per
// cell, scaled by the camera.
type renderer struct {
	m      *world.Map
	worldW int
	worldH int
	minX   int
	minY   int

	pixels []color.RGBA
	tex    rl.Texture2D
}

func newRenderer(m *world.Map) *renderer {
	w, h := m.Size()
	min, _ := m.Bounds()

	img := rl.GenImageColor(w, h, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)

	return &renderer{
		m:      m,
		worldW: w,
		worldH: h,
		minX:   min.X,
		minY:   min.Y,
		pixels: make([]color.RGBA, w*h),
	}
}

// refresh rewrites the pixel buffer from the map and uploads it.
func (r *renderer) refresh() {
	for i := range r.pixels {
		r.pixels[i] = background
	}

	r.m.EachChunk(func(c *world.Chunk) {
		c.Each(func(in *world.Instance) {
			// Texture row 0 is the top of the world (highest Y).
			row := r.worldH - 1 - (in.Pos.Y - r.minY)
			col := in.Pos.X - r.minX
			r.pixels[row*r.worldW+col] = color.RGBA{
				R: in.Color.R, G: in.Color.G, B: in.Color.B, A: in.Color.A,
			}
		})
	})

	rl.UpdateTexture(r.tex, r.pixels)
}

func (r *renderer) unload() {
	rl.UnloadTexture(r.tex)
}

// Draw renders the world, HUD, and type picker.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.ren.refresh()

	// The texture's top-left pixel is world cell (0, worldH-1) in camera
	// coordinates; project it and scale by zoom.
	topLeftX, topLeftY := g.cam.WorldToScreen(0, float32(g.ren.worldH))
	rl.DrawTexturePro(
		g.ren.tex,
		rl.Rectangle{X: 0, Y: 0, Width: float32(g.ren.worldW), Height: float32(g.ren.worldH)},
		rl.Rectangle{
			X:      topLeftX,
			Y:      topLeftY,
			Width:  float32(g.ren.worldW) * g.cam.Zoom,
			Height: float32(g.ren.worldH) * g.cam.Zoom,
		},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)

	g.drawBrushOutline()
	g.drawHUD()
	g.drawPicker()

	rl.EndDrawing()
	g.perf.RecordFrame()
}

// drawBrushOutline shows the brush footprint under the cursor.
func (g *Game) drawBrushOutline() {
	mouse := rl.GetMousePosition()
	radius := float32(g.brushRadius) * g.cam.Zoom
	if radius < 2 {
		radius = 2
	}
	c := rl.White
	if g.erasing {
		c = rl.Red
	}
	rl.DrawCircleLines(int32(mouse.X), int32(mouse.Y), radius, c)
}

// drawHUD draws tick, census, and perf lines in the top-left corner.
func (g *Game) drawHUD() {
	st := g.sim.Stats()
	perf := g.perf.Stats()

	rl.DrawText(fmt.Sprintf("Tick: %d", g.sim.Tick()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Particles: %d  Chunks: %d awake / %d asleep",
		st.Particles, st.ActiveChunks, st.HibernatingChunks), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Moves: %d  Swaps: %d  Burning: %d",
		st.Moves, st.Swaps, st.BurnTicks), 10, 60, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]  Tick: %s",
		g.speed, perf.AvgTickDuration.Round(10*time.Microsecond)), 10, 85, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED [space]  step [n]", 10, 110, 20, rl.Yellow)
	}
}

// drawPicker draws the particle type buttons and brush slider along the
// right edge.
func (g *Game) drawPicker() {
	panelX := float32(rl.GetScreenWidth()) - 170
	y := float32(10)

	rl.DrawText("Brush", int32(panelX), int32(y), 16, rl.LightGray)
	y += 22

	newRadius := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y, Width: 130, Height: 18},
		"1", "16",
		float32(g.brushRadius), 1, 16,
	)
	rl.DrawText(fmt.Sprintf("%d", g.brushRadius), int32(panelX+138), int32(y+2), 16, rl.LightGray)
	g.brushRadius = int(newRadius)
	y += 30

	for i, name := range g.typeNames {
		label := name
		if i == g.brushType {
			label = "> " + name
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 150, Height: 24}, label) {
			g.brushType = i
		}
		y += 28
	}
}
