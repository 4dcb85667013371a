package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/viz"
)

// ParticlesToSVG draws a population as filled disks inside its domain, with
// y pointing up and one SVG unit per scale domain units.
func ParticlesToSVG(ps []particle.Particle, b particle.Bounds, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := b.Width() / scale
	height := b.Height() / scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := range ps {
		p := &ps[i]
		cx := (p.Pos.X + b.HalfWidth) / scale
		cy := (b.HalfHeight - p.Pos.Y) / scale
		stroke := ""
		if p.Role == particle.Alpha {
			stroke = ` stroke="#ffffff" stroke-width="1"`
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s/>
`, cx, cy, p.Radius/scale, viz.ColorHex(p.Color), stroke))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values against times as a polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := min(len(times), len(values))
	if n < 2 {
		return ""
	}

	minX, maxX := times[0], times[n-1]
	minY, maxY := values[0], values[0]
	for _, v := range values[:n] {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (times[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
