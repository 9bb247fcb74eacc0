package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/energystat-cli/internal/utils"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const manifestFileName = "manifest.json"

// Artifact is one rendered figure.
type Artifact struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Manifest indexes the outputs of a single report run.
type Manifest struct {
	RunID     string     `json:"run_id"`
	Input     string     `json:"input"`
	Rows      int        `json:"rows"`
	Dropped   int        `json:"duplicates_dropped"`
	Filtered  int        `json:"filtered_rows"`
	Charts    []Artifact `json:"charts"`
	Warnings  []string   `json:"warnings,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Not serialized: directory the manifest is written to
	dir string `json:"-"`
}

// NewManifest starts a manifest for a run writing into dir.
func NewManifest(input, dir string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Input:     input,
		CreatedAt: time.Now(),
		dir:       dir,
	}
}

// LoadManifest reads manifest.json from dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.dir = dir
	return &m, nil
}

// Dir returns the directory the manifest is written to.
func (m *Manifest) Dir() string { return m.dir }

// AddChart records a rendered figure.
func (m *Manifest) AddChart(kind, path string) {
	m.Charts = append(m.Charts, Artifact{Kind: kind, Path: path})
}

// Warn records a non-fatal condition such as a skipped chart.
func (m *Manifest) Warn(msg string) {
	m.Warnings = append(m.Warnings, msg)
}

// Save writes manifest.json using atomic write and returns its path.
func (m *Manifest) Save() (string, error) {
	if m.dir == "" {
		return "", errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(m.dir); err != nil {
		return "", fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return "", err
	}
	path := filepath.Join(m.dir, manifestFileName)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
