package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/partsim/internal/particle"
)

const (
	metadataFile  = "metadata.json"
	seriesFile    = "series.csv"
	particlesFile = "particles.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Kernel      string             `json:"kernel"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint64             `json:"seed"`
	Count       int                `json:"count"`
	Workers     int                `json:"workers"`
	Ticks       int                `json:"ticks"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Bootstrap   string             `json:"bootstrap"`
	BootstrapMs float64            `json:"bootstrap_ms"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Run is everything persisted for one simulation: its metadata, the metric
// series sampled once per tick, and the final population.
type Run struct {
	Meta      RunMetadata
	Names     []string
	Times     []float64
	Series    map[string][]float64
	Particles []particle.Particle
}

// Save writes run under a new directory and returns its ID.
func (s *Store) Save(run *Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Meta.Kernel, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := run.Meta
	meta.ID = runID
	meta.Timestamp = now
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := writeSeries(filepath.Join(runDir, seriesFile), run); err != nil {
		return "", err
	}

	if len(run.Particles) > 0 {
		if err := writeParticles(filepath.Join(runDir, particlesFile), run.Particles); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, run *Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"time"}, run.Names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range run.Times {
		row := []string{formatFloat(t)}
		for _, name := range run.Names {
			col := run.Series[name]
			if i < len(col) {
				row = append(row, formatFloat(col[i]))
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

var particleHeader = []string{"x", "y", "vx", "vy", "radius", "r", "g", "b", "role", "class"}

func writeParticles(path string, ps []particle.Particle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(particleHeader); err != nil {
		return err
	}
	for i := range ps {
		p := &ps[i]
		row := []string{
			formatFloat(p.Pos.X), formatFloat(p.Pos.Y),
			formatFloat(p.Vel.X), formatFloat(p.Vel.Y),
			formatFloat(p.Radius),
			formatFloat(p.Color.R), formatFloat(p.Color.G), formatFloat(p.Color.B),
			strconv.Itoa(int(p.Role)), strconv.Itoa(p.Class),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries returns the metric names, the sample times, and one column per
// metric.
func (s *Store) LoadSeries(runID string) ([]string, []float64, map[string][]float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil, fmt.Errorf("%s: missing header", seriesFile)
	}

	names := records[0][1:]
	times := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(names))

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row, ok := parseRow(record[1:], len(names))
		if !ok {
			continue
		}
		times = append(times, t)

		for j, name := range names {
			series[name] = append(series[name], row[j])
		}
	}

	return names, times, series, nil
}

// parseRow parses one sample of n metric values. A short row or a cell that
// is not a number rejects the whole sample so columns stay aligned with times.
func parseRow(cells []string, n int) ([]float64, bool) {
	if len(cells) < n {
		return nil, false
	}
	row := make([]float64, n)
	for j := range row {
		val, err := strconv.ParseFloat(cells[j], 64)
		if err != nil {
			return nil, false
		}
		row[j] = val
	}
	return row, true
}

// LoadParticles returns the final population of a run.
func (s *Store) LoadParticles(runID string) ([]particle.Particle, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, particlesFile))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []particle.Particle{}, nil
	}

	ps := make([]particle.Particle, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) != len(particleHeader) {
			return nil, fmt.Errorf("%s:%d: expected %d fields, got %d", particlesFile, line+2, len(particleHeader), len(record))
		}

		var f [8]float64
		for j := range f {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", particlesFile, line+2, err)
			}
			f[j] = v
		}
		role, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", particlesFile, line+2, err)
		}
		class, err := strconv.Atoi(record[9])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", particlesFile, line+2, err)
		}

		ps = append(ps, particle.Particle{
			Pos:    particle.Vec2{X: f[0], Y: f[1]},
			Vel:    particle.Vec2{X: f[2], Y: f[3]},
			Radius: f[4],
			Color:  particle.Color{R: f[5], G: f[6], B: f[7]},
			Role:   particle.Role(role),
			Class:  class,
		})
	}
	return ps, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
