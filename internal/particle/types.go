package particle

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2  { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Neg() Vec2             { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64          { return math.Sqrt(v.LenSq()) }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) IsFinite() bool        { return isFinite(v.X) && isFinite(v.Y) }

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Color channels are kept in [0,1].
type Color struct {
	R, G, B float64
}

func (c Color) Add(o Color) Color     { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Scale(f float64) Color { return Color{c.R * f, c.G * f, c.B * f} }
func (c Color) Luminance() float64    { return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B }

// Role is the flocking role of a particle. Alphas are passive attractors,
// betas seek the nearest alpha.
type Role uint8

const (
	Free Role = iota
	Alpha
	Beta
)

func (r Role) String() string {
	switch r {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	default:
		return "free"
	}
}

// Axes is a bit set of the axes the boundary reflector flipped.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
)

func (a Axes) Has(b Axes) bool { return a&b != 0 }

type Particle struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  Color

	// ColorTimer accumulates elapsed seconds; a recolor fires once it
	// exceeds ColorThreshold.
	ColorTimer     float64
	ColorThreshold float64

	Role  Role
	Class int

	// Reflected holds the axes flipped by the reflector during the last tick.
	Reflected Axes
}

func (p *Particle) IsValid() bool {
	return p.Pos.IsFinite() && p.Vel.IsFinite() && isFinite(p.Radius)
}

// Bounds describes a domain centered on the origin.
type Bounds struct {
	HalfWidth  float64
	HalfHeight float64
}

func NewBounds(width, height float64) Bounds {
	return Bounds{HalfWidth: width / 2, HalfHeight: height / 2}
}

func (b Bounds) Width() float64  { return 2 * b.HalfWidth }
func (b Bounds) Height() float64 { return 2 * b.HalfHeight }

// Inset returns the interval a disk of the given radius may occupy on each axis.
func (b Bounds) Inset(radius float64) (minX, maxX, minY, maxY float64) {
	return -b.HalfWidth + radius, b.HalfWidth - radius, -b.HalfHeight + radius, b.HalfHeight - radius
}

// Contains reports whether pos lies inside the inset domain for radius,
// widened by slack on every side.
func (b Bounds) Contains(pos Vec2, radius, slack float64) bool {
	minX, maxX, minY, maxY := b.Inset(radius)
	return pos.X >= minX-slack && pos.X <= maxX+slack &&
		pos.Y >= minY-slack && pos.Y <= maxY+slack
}
