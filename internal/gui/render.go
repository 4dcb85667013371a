package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/partsim/internal/particle"
)

// fitCamera centers the domain on screen with y pointing up, scaled to fit
// with a margin.
func fitCamera(width, height float64) rl.Camera2D {
	sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	zoom := min(sw/float32(width), sh/float32(height)) * 0.9
	return rl.Camera2D{
		Offset: rl.NewVector2(sw/2, sh/2),
		Target: rl.NewVector2(0, 0),
		Zoom:   zoom,
	}
}

func toScreen(v particle.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(-v.Y))
}

func toColor(c particle.Color) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), 255)
}

func channel(v float64) uint8 {
	return uint8(max(0, min(255, v*255+0.5)))
}

func (a *App) drawBounds() {
	b := a.Cfg.Engine().Bounds
	rl.DrawRectangleLinesEx(
		rl.NewRectangle(float32(-b.HalfWidth), float32(-b.HalfHeight), float32(b.Width()), float32(b.Height())),
		2/a.Camera.Zoom, ColWall)
}

func (a *App) drawParticles(ps []particle.Particle) {
	for i := range ps {
		p := &ps[i]
		pos := toScreen(p.Pos)
		rl.DrawCircleV(pos, float32(p.Radius), toColor(p.Color))
		if p.Role == particle.Alpha {
			rl.DrawCircleLines(int32(pos.X), int32(pos.Y), float32(p.Radius)+3, ColSelect)
		}
	}
}

// DrawTelemetry plots the recorded kinetic energy as a line strip.
func (a *App) DrawTelemetry() {
	series := a.Recorder.Series("kinetic_energy")
	if len(series) < 2 {
		return
	}

	rectX, rectY := 30, rl.GetScreenHeight()-120
	width, height := 400, 60

	minVal, maxVal := series[0], series[0]
	for _, v := range series {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(series))
	for i, val := range series {
		px := float32(rectX) + (float32(i)/float32(len(series)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("KE: %.2e", series[len(series)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
