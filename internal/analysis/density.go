package analysis

import (
	"strings"

	"github.com/san-kum/partsim/internal/particle"
)

// Density counts particle centers per cell of a cols x rows grid laid over
// the domain. Row 0 is the top of the domain. Centers past a wall are
// clamped into the edge cell.
func Density(ps []particle.Particle, b particle.Bounds, cols, rows int) [][]int {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
	}

	for i := range ps {
		col := int((ps[i].Pos.X + b.HalfWidth) / b.Width() * float64(cols))
		row := int((b.HalfHeight - ps[i].Pos.Y) / b.Height() * float64(rows))
		grid[clamp(row, rows)][clamp(col, cols)]++
	}
	return grid
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

const shades = " .:-=+*#%@"

// DensityToASCII shades each cell relative to the densest one.
func DensityToASCII(grid [][]int) string {
	peak := 0
	for _, row := range grid {
		for _, c := range row {
			if c > peak {
				peak = c
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		for _, c := range row {
			idx := 0
			if peak > 0 && c > 0 {
				idx = 1 + c*(len(shades)-2)/peak
			}
			sb.WriteByte(shades[idx])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// VelocityPortraitToASCII scatters every particle's velocity on a
// width x height canvas with axes through the origin.
func VelocityPortraitToASCII(ps []particle.Particle, width, height int) string {
	if len(ps) == 0 || width < 2 || height < 2 {
		return ""
	}

	limit := 0.0
	for i := range ps {
		limit = max(limit, abs(ps[i].Vel.X), abs(ps[i].Vel.Y))
	}
	if limit == 0 {
		limit = 1
	}
	limit *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	mid := (width - 1) / 2
	for row := range canvas {
		canvas[row][mid] = '│'
	}
	axis := (height - 1) / 2
	for col := range canvas[axis] {
		canvas[axis][col] = '─'
	}
	canvas[axis][mid] = '┼'

	for i := range ps {
		col := int((ps[i].Vel.X + limit) / (2 * limit) * float64(width-1))
		row := height - 1 - int((ps[i].Vel.Y+limit)/(2*limit)*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
