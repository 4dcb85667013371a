package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/partsim/internal/particle"
)

type ExportParticle struct {
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	VX     float64    `json:"vx"`
	VY     float64    `json:"vy"`
	Radius float64    `json:"radius"`
	Color  [3]float64 `json:"color"`
	Role   string     `json:"role"`
	Class  int        `json:"class"`
}

type ExportData struct {
	Kernel    string             `json:"kernel"`
	Seed      uint64             `json:"seed"`
	Ticks     int                `json:"ticks"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Metrics   map[string]float64 `json:"metrics"`
	Particles []ExportParticle   `json:"particles"`
}

// NewExport flattens a run's metadata and population for JSON output.
func NewExport(meta RunMetadata, ps []particle.Particle) ExportData {
	data := ExportData{
		Kernel:    meta.Kernel,
		Seed:      meta.Seed,
		Ticks:     meta.Ticks,
		Width:     meta.Width,
		Height:    meta.Height,
		Metrics:   meta.Metrics,
		Particles: make([]ExportParticle, len(ps)),
	}
	for i, p := range ps {
		data.Particles[i] = ExportParticle{
			X:      p.Pos.X,
			Y:      p.Pos.Y,
			VX:     p.Vel.X,
			VY:     p.Vel.Y,
			Radius: p.Radius,
			Color:  [3]float64{p.Color.R, p.Color.G, p.Color.B},
			Role:   p.Role.String(),
			Class:  p.Class,
		}
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
