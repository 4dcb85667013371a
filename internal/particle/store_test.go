package particle

import (
	"math"
	"testing"
)

func TestStore_AppendAndSnapshot(t *testing.T) {
	s := NewStore(4)
	s.Append(Particle{Radius: 1}, Particle{Radius: 2})

	if s.Len() != 2 {
		t.Fatalf("expected 2 particles, got %d", s.Len())
	}

	snap := s.Snapshot()
	snap[0].Radius = 99
	if s.Front()[0].Radius != 1 {
		t.Error("snapshot aliases the published buffer")
	}
}

func TestStore_CommitPublishesBack(t *testing.T) {
	s := NewStore(0)
	s.Reset([]Particle{{Pos: Vec2{1, 1}}, {Pos: Vec2{2, 2}}})

	back := s.Back()
	if len(back) != 2 {
		t.Fatalf("expected back buffer of 2, got %d", len(back))
	}
	for i := range back {
		back[i] = s.Front()[i]
		back[i].Pos = back[i].Pos.Scale(10)
	}

	if s.Front()[0].Pos.X != 1 {
		t.Error("writing the back buffer changed the published tick")
	}
	s.Commit()
	if s.Front()[0].Pos.X != 10 || s.Front()[1].Pos.Y != 20 {
		t.Errorf("commit did not publish: %+v", s.Front())
	}

	back = s.Back()
	if len(back) != 2 {
		t.Fatalf("expected reused back buffer of 2, got %d", len(back))
	}
}

func TestStore_ResetReplaces(t *testing.T) {
	s := NewStore(2)
	s.Append(Particle{}, Particle{}, Particle{})
	s.Reset([]Particle{{Radius: 5}})

	if s.Len() != 1 || s.Front()[0].Radius != 5 {
		t.Errorf("reset did not replace population: %+v", s.Front())
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(200, 100)
	if b.HalfWidth != 100 || b.HalfHeight != 50 {
		t.Fatalf("unexpected half extents %+v", b)
	}
	if b.Width() != 200 || b.Height() != 100 {
		t.Errorf("unexpected size %vx%v", b.Width(), b.Height())
	}

	minX, maxX, minY, maxY := b.Inset(10)
	if minX != -90 || maxX != 90 || minY != -40 || maxY != 40 {
		t.Errorf("unexpected inset [%v,%v]x[%v,%v]", minX, maxX, minY, maxY)
	}

	tests := []struct {
		name  string
		pos   Vec2
		slack float64
		want  bool
	}{
		{"center", Vec2{0, 0}, 0, true},
		{"on inset edge", Vec2{90, -40}, 0, true},
		{"past edge", Vec2{95, 0}, 0, false},
		{"past edge within slack", Vec2{95, 0}, 5, true},
		{"past slack", Vec2{0, -46}, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.pos, 10, tt.slack); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestParticleIsValid(t *testing.T) {
	p := Particle{Pos: Vec2{1, 2}, Vel: Vec2{3, 4}, Radius: 1}
	if !p.IsValid() {
		t.Error("finite particle reported invalid")
	}

	p.Vel.X = math.NaN()
	if p.IsValid() {
		t.Error("NaN velocity reported valid")
	}

	p.Vel.X = 0
	p.Pos.Y = math.Inf(1)
	if p.IsValid() {
		t.Error("infinite position reported valid")
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	if v.Len() != 5 {
		t.Errorf("expected length 5, got %v", v.Len())
	}
	if d := v.DistSq(Vec2{0, 0}); d != 25 {
		t.Errorf("expected squared distance 25, got %v", d)
	}
	if n := v.Neg(); n != (Vec2{-3, -4}) {
		t.Errorf("unexpected negation %v", n)
	}
	if dot := v.Dot(Vec2{1, 1}); dot != 7 {
		t.Errorf("expected dot 7, got %v", dot)
	}
}

func TestRoleString(t *testing.T) {
	for role, want := range map[Role]string{Free: "free", Alpha: "alpha", Beta: "beta"} {
		if role.String() != want {
			t.Errorf("expected %s, got %s", want, role.String())
		}
	}
}

func TestAxes(t *testing.T) {
	a := AxisX
	if !a.Has(AxisX) || a.Has(AxisY) {
		t.Errorf("unexpected axes %b", a)
	}
	a |= AxisY
	if !a.Has(AxisY) {
		t.Error("expected AxisY after union")
	}
}
