package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/partsim/internal/particle"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBase = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid with an optional foreground color per
// cell. Its size in dots is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Set lights the dot at (x, y).
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

// SetColor lights the dot and tints its cell. The last color wins.
func (c *Canvas) SetColor(x, y int, hex string) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
		c.Colors[row][col] = hex
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every dot within r of (cx, cy). r < 1 lights the center.
func (c *Canvas) FillCircle(cx, cy, r int, hex string) {
	if r < 1 {
		c.SetColor(cx, cy, hex)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.SetColor(cx+dx, cy+dy, hex)
			}
		}
	}
}

// Border outlines the full dot area.
func (c *Canvas) Border() {
	w, h := c.Width*2-1, c.Height*4-1
	c.DrawLine(0, 0, w, 0)
	c.DrawLine(w, 0, w, h)
	c.DrawLine(w, h, 0, h)
	c.DrawLine(0, h, 0, 0)
}

// Plain renders the dots without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if hex := c.Colors[i][j]; hex != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps domain coordinates, origin at the center and y up, onto
// canvas dots.
type Viewport struct {
	Bounds particle.Bounds
	Dots   [2]int
}

func NewViewport(b particle.Bounds, c *Canvas) Viewport {
	return Viewport{Bounds: b, Dots: [2]int{c.Width * 2, c.Height * 4}}
}

func (v Viewport) Project(p particle.Vec2) (int, int) {
	x := (p.X + v.Bounds.HalfWidth) / v.Bounds.Width() * float64(v.Dots[0]-1)
	y := (v.Bounds.HalfHeight - p.Y) / v.Bounds.Height() * float64(v.Dots[1]-1)
	return int(x + 0.5), int(y + 0.5)
}

// Scale converts a domain length to dots along x.
func (v Viewport) Scale(d float64) int {
	return int(d / v.Bounds.Width() * float64(v.Dots[0]))
}

// DrawParticles renders every particle as a filled disk in its own color.
func (c *Canvas) DrawParticles(ps []particle.Particle, v Viewport) {
	for i := range ps {
		x, y := v.Project(ps[i].Pos)
		c.FillCircle(x, y, v.Scale(ps[i].Radius), ColorHex(ps[i].Color))
	}
}

// ColorHex formats a [0,1] RGB color, clamping each channel.
func ColorHex(col particle.Color) string {
	return hexColor(channel(col.R), channel(col.G), channel(col.B))
}

func channel(v float64) int {
	return int(v*255 + 0.5)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
