package export

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/san-kum/partsim/internal/particle"
)

func TestParticlesToSVG(t *testing.T) {
	b := particle.NewBounds(200, 100)
	ps := []particle.Particle{
		{Pos: particle.Vec2{X: 0, Y: 0}, Radius: 10, Color: particle.Color{R: 1}},
		{Pos: particle.Vec2{X: -100, Y: 50}, Radius: 5, Role: particle.Alpha},
	}

	svg := ParticlesToSVG(ps, b, 1)
	if strings.Count(svg, "<circle") != 2 {
		t.Fatalf("expected 2 circles in %s", svg)
	}
	if !strings.Contains(svg, `cx="100.00" cy="50.00" r="10.00" fill="#ff0000"`) {
		t.Errorf("center particle misplaced: %s", svg)
	}
	if !strings.Contains(svg, `cx="0.00" cy="0.00"`) || !strings.Contains(svg, `stroke="#ffffff"`) {
		t.Errorf("corner alpha particle misplaced: %s", svg)
	}
	if err := xml.Unmarshal([]byte(svg), new(struct{})); err != nil {
		t.Errorf("invalid xml: %v", err)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{0}, []float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}

	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{1, 3, 2}, 100, 50, "#00ff00")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments in %s", svg)
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color missing")
	}
}
