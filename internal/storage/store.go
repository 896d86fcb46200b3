package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powerpendulum/internal/config"
	"github.com/san-kum/powerpendulum/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Gravity   float64            `json:"gravity"`
	Damping   float64            `json:"damping"`
	Trail     int                `json:"trail_length"`
	Resets    int                `json:"resets"`
	Metrics   map[string]float64 `json:"metrics"`
}

var frameHeader = []string{
	"tick", "time",
	"x1", "y1", "z1", "vx1", "vy1", "vz1", "m1",
	"x2", "y2", "z2", "vx2", "vy2", "vz2", "m2",
	"trail_len", "hue", "reset",
}

// Save writes a run directory holding metadata.json and frames.csv and
// returns the run ID.
func (s *Store) Save(name string, cfg *config.Config, seed int64, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.makeRunDir(fmt.Sprintf("%s_%d_%d", name, now.Unix(), seed))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Seed:      seed,
		Dt:        cfg.Dt,
		Ticks:     result.Ticks,
		Gravity:   cfg.Gravity,
		Damping:   cfg.Damping,
		Trail:     cfg.Trail.Length,
		Resets:    result.Resets,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

// makeRunDir creates a fresh directory for id, adding a counter suffix
// when a run with the same ID already exists.
func (s *Store) makeRunDir(id string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	candidate := id
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, candidate)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return candidate, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		candidate = fmt.Sprintf("%s-%d", id, i)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteFramesCSV writes frames in the frames.csv layout, header first.
func WriteFramesCSV(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}

	row := make([]string, 0, len(frameHeader))
	for _, f := range frames {
		row = append(row[:0], strconv.Itoa(f.Tick), formatFloat(f.Time))
		for _, b := range f.Bodies {
			for i := 0; i < 3; i++ {
				row = append(row, formatFloat(b.Position[i]))
			}
			for i := 0; i < 3; i++ {
				row = append(row, formatFloat(b.Velocity[i]))
			}
			row = append(row, formatFloat(b.Mass))
		}
		row = append(row, strconv.Itoa(f.TrailLen), strconv.Itoa(f.Hue), strconv.FormatBool(f.Reset))

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// FramesPath is the location of a run's frames.csv.
func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, framesFile)
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(s.FramesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		f, err := parseFrame(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(record []string) (sim.Frame, error) {
	var f sim.Frame
	var err error
	if f.Tick, err = strconv.Atoi(record[0]); err != nil {
		return f, err
	}

	floats := make([]float64, 15)
	for i := range floats {
		if floats[i], err = strconv.ParseFloat(record[i+1], 64); err != nil {
			return f, err
		}
	}
	f.Time = floats[0]
	for b := 0; b < 2; b++ {
		v := floats[1+b*7:]
		f.Bodies[b] = sim.BodyState{
			Position: mgl64.Vec3{v[0], v[1], v[2]},
			Velocity: mgl64.Vec3{v[3], v[4], v[5]},
			Mass:     v[6],
		}
	}

	if f.TrailLen, err = strconv.Atoi(record[16]); err != nil {
		return f, err
	}
	if f.Hue, err = strconv.Atoi(record[17]); err != nil {
		return f, err
	}
	if f.Reset, err = strconv.ParseBool(record[18]); err != nil {
		return f, err
	}
	return f, nil
}
