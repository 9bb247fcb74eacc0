// Package chart renders the wind-energy figures from a filtered dataset view.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Kind names one of the supported figures.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindPie     Kind = "pie"
	KindBox     Kind = "box"
	KindHeatmap Kind = "heatmap"
)

// Kinds lists every figure in rendering order.
var Kinds = []Kind{KindBar, KindLine, KindPie, KindBox, KindHeatmap}

// ParseKind validates a figure name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind %q (use bar|line|pie|box|heatmap)", s)
}

var formats = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "svg": {}, "pdf": {}, "eps": {}, "tif": {}, "tiff": {},
}

// Options controls where and how figures are written.
type Options struct {
	OutDir string
	Format string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions writes 10x6 inch PNGs into ./charts.
func DefaultOptions() Options {
	return Options{OutDir: "charts", Format: "png", Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// Renderer draws figures into files under Options.OutDir.
type Renderer struct {
	opt Options
}

// NewRenderer validates opt and creates the output directory.
func NewRenderer(opt Options) (*Renderer, error) {
	def := DefaultOptions()
	if opt.OutDir == "" {
		opt.OutDir = def.OutDir
	}
	if opt.Format == "" {
		opt.Format = def.Format
	}
	opt.Format = strings.ToLower(strings.TrimPrefix(opt.Format, "."))
	if _, ok := formats[opt.Format]; !ok {
		return nil, fmt.Errorf("unsupported image format %q", opt.Format)
	}
	if opt.Width <= 0 {
		opt.Width = def.Width
	}
	if opt.Height <= 0 {
		opt.Height = def.Height
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Renderer{opt: opt}, nil
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opt }

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) (string, error) {
	path := filepath.Join(r.opt.OutDir, name+"."+r.opt.Format)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("chart saved")
	return path, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	return p
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('_')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
