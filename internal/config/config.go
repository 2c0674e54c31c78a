// Package config looks up named frame layout and colour scheme presets.
// A theme directory, when given, is searched before the presets built into
// the binary.
package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/logger"
	"github.com/alping/medrefcards/pkg/models"
)

const DefaultPreset = "default"

type Kind string

const (
	FrameLayouts  Kind = "frame-layouts"
	ColourSchemes Kind = "colour-schemes"
)

//go:embed presets
var builtin embed.FS

type Presets struct {
	themeDir string
	logger   *logger.Logger

	// Warnings lists every preset substitution made so far.
	Warnings []string
}

func New(themeDir string, logger *logger.Logger) *Presets {
	return &Presets{themeDir: themeDir, logger: logger}
}

// Layout loads and resolves the named frame layout.
func (p *Presets) Layout(name string) (layout.Spec, error) {
	data, name, err := p.lookup(FrameLayouts, name)
	if err != nil {
		return layout.Spec{}, err
	}

	var in layout.Inputs
	if err := decode(data, &in); err != nil {
		return layout.Spec{}, &layout.ConfigError{
			Field:  string(FrameLayouts) + "/" + name,
			Reason: "malformed preset",
			Err:    err,
		}
	}

	spec, err := layout.Resolve(in)
	if err != nil {
		return layout.Spec{}, fmt.Errorf("frame layout %s: %w", name, err)
	}
	p.logger.Debug("Using frame layout %s (%s, face %.2f x %.2f cm)",
		name, spec.Arrangement(), spec.Face().Width, spec.Face().Height)
	return spec, nil
}

// ColourScheme loads the named domain colour scheme. Domain keys are matched
// case-insensitively.
func (p *Presets) ColourScheme(name string) (models.ColorScheme, error) {
	data, name, err := p.lookup(ColourSchemes, name)
	if err != nil {
		return models.ColorScheme{}, err
	}

	var raw map[string][]float64
	if err := decode(data, &raw); err != nil {
		return models.ColorScheme{}, &layout.ConfigError{
			Field:  string(ColourSchemes) + "/" + name,
			Reason: "malformed preset",
			Err:    err,
		}
	}

	scheme := models.ColorScheme{Name: name, Domains: make(map[string]models.RGB, len(raw))}
	for domain, c := range raw {
		field := fmt.Sprintf("%s/%s: %s", ColourSchemes, name, domain)
		if len(c) != 3 {
			return models.ColorScheme{}, &layout.ConfigError{Field: field, Reason: fmt.Sprintf("want 3 components, got %d", len(c))}
		}
		if slices.ContainsFunc(c, func(v float64) bool { return v < 0 || v > 1 }) {
			return models.ColorScheme{}, &layout.ConfigError{Field: field, Reason: "components must be within 0..1"}
		}
		key := strings.ToLower(strings.TrimSpace(domain))
		scheme.Domains[key] = models.RGB{R: c[0], G: c[1], B: c[2]}
	}

	p.logger.Debug("Using colour scheme %s with %d domains", name, len(scheme.Domains))
	return scheme, nil
}

// Names lists the presets of a kind available from both sources.
func (p *Presets) Names(kind Kind) []string {
	var names []string
	add := func(entries []fs.DirEntry) {
		for _, e := range entries {
			if n, ok := strings.CutSuffix(e.Name(), ".yml"); ok && !e.IsDir() && !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	if p.themeDir != "" {
		entries, _ := os.ReadDir(filepath.Join(p.themeDir, string(kind)))
		add(entries)
	}
	entries, _ := builtin.ReadDir(path.Join("presets", string(kind)))
	add(entries)
	slices.Sort(names)
	return names
}

// lookup returns the preset's bytes and the name actually used. Unknown
// names fall back to the default preset with a warning.
func (p *Presets) lookup(kind Kind, name string) ([]byte, string, error) {
	if name == "" {
		name = DefaultPreset
	}

	data, err := p.read(kind, name)
	if err == nil {
		return data, name, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("reading %s preset %s: %w", kind, name, err)
	}

	msg := fmt.Sprintf("no %s preset %q, using %s", strings.TrimSuffix(string(kind), "s"), name, DefaultPreset)
	p.Warnings = append(p.Warnings, msg)
	p.logger.Warn("%s", msg)

	data, err = p.read(kind, DefaultPreset)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s preset %s: %w", kind, DefaultPreset, err)
	}
	return data, DefaultPreset, nil
}

func (p *Presets) read(kind Kind, name string) ([]byte, error) {
	file := name + ".yml"
	if !fs.ValidPath(file) || strings.Contains(name, "/") {
		return nil, fs.ErrNotExist
	}

	if p.themeDir != "" {
		data, err := os.ReadFile(filepath.Join(p.themeDir, string(kind), file))
		if err == nil {
			p.logger.Trace("Preset %s/%s read from %s", kind, name, p.themeDir)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return builtin.ReadFile(path.Join("presets", string(kind), file))
}

// decode rejects unknown keys so that typos in a preset are not silently
// ignored.
func decode(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
