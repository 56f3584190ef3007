package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// supportedVersions covers the flat layout (1) and the grouped layout (2).
var supportedVersions = mustConstraint(">= 1, < 3")

// defaultColors holds the color defaults keyed by their grouped name.
var defaultColors = map[string]string{
	"background":      "transparent",
	"dial":            "#FFFFFF00",
	"hour_mark":       "#000000",
	"minute_mark":     "#000000",
	"hour_hand":       "#000000",
	"minute_hand":     "#000000",
	"second_hand":     "#FF0000",
	"date_background": "#000000",
	"date":            "#FFFFFF",
}

// windowKeys may appear at top level in flat documents.
var windowKeys = map[string]bool{
	"x": true, "y": true, "width": true, "height": true,
	"frameless": true, "always_on_top": true, "tool": true, "opacity": true,
}

type document struct {
	Version string            `yaml:"version"`
	Font    string            `yaml:"font"`
	Chime   bool              `yaml:"chime"`
	Colors  map[string]string `yaml:"colors"`
	Window  windowDocument    `yaml:"window"`
}

type windowDocument struct {
	X           int     `yaml:"x"`
	Y           int     `yaml:"y"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Frameless   bool    `yaml:"frameless"`
	AlwaysOnTop bool    `yaml:"always_on_top"`
	Tool        bool    `yaml:"tool"`
	Opacity     float64 `yaml:"opacity"`
}

// Load reads the YAML config at path.
// Any failure is logged and answered with the default configuration.
func Load(path string) *Config {
	cfg, err := load(path)
	if err != nil {
		log.Printf("Warning: %v. Using default settings.", err)
		return Default()
	}
	return cfg
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document in either the flat or the grouped layout,
// deep-merges it onto the defaults and clamps out-of-range window values.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := defaultDocument()
	merge(doc, normalize(raw))

	cfg, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := cfg.clampWindow(); err != nil {
		log.Printf("Warning: %v. Clamped to %dx%d, opacity %g.",
			strings.ReplaceAll(err.Error(), "\n", "; "), cfg.Window.Width, cfg.Window.Height, cfg.Window.Opacity)
	}
	return cfg, nil
}

// FindFile returns the config path for the program called name:
// ~/.name.yaml, then name.yaml beside the executable, else the bare file name.
func FindFile(name string) string {
	home, _ := os.UserHomeDir()
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	return findFile(home, exeDir, name)
}

func findFile(home, exeDir, name string) string {
	file := name + ".yaml"
	if home != "" {
		if p := filepath.Join(home, "."+file); exists(p) {
			return p
		}
	}
	if exeDir != "" {
		if p := filepath.Join(exeDir, file); exists(p) {
			return p
		}
	}
	return file
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func defaultDocument() map[string]any {
	colors := make(map[string]any, len(defaultColors))
	for k, v := range defaultColors {
		colors[k] = v
	}
	return map[string]any{
		"version": SchemaVersion,
		"font":    DefaultFont,
		"chime":   false,
		"colors":  colors,
		"window": map[string]any{
			"x":             -200,
			"y":             -200,
			"width":         200,
			"height":        200,
			"frameless":     true,
			"always_on_top": true,
			"tool":          true,
			"opacity":       1.0,
		},
	}
}

// normalize rewrites a flat document into the grouped layout.
// Grouped keys are applied after flat ones so they win on conflict.
func normalize(raw map[string]any) map[string]any {
	out := map[string]any{}
	colors := map[string]any{}
	window := map[string]any{}

	for k, v := range raw {
		switch {
		case k == "colors" || k == "window":
		case windowKeys[k]:
			window[k] = v
		case k == "background" || strings.HasSuffix(k, "_color"):
			colors[strings.TrimSuffix(k, "_color")] = colorValue(v)
		default:
			out[k] = v
		}
	}

	if m, ok := asMap(raw["colors"]); ok {
		for k, v := range m {
			colors[strings.TrimSuffix(k, "_color")] = colorValue(v)
		}
	}
	if m, ok := asMap(raw["window"]); ok {
		for k, v := range m {
			window[k] = v
		}
	}

	if len(colors) > 0 {
		out["colors"] = colors
	}
	if len(window) > 0 {
		out["window"] = window
	}
	return out
}

// colorValue keeps an explicitly empty color key, which means transparent.
func colorValue(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// merge copies src into dst, descending into maps present on both sides.
// Null values leave dst untouched.
func merge(dst, src map[string]any) {
	for k, sv := range src {
		if sv == nil {
			continue
		}
		if sm, ok := asMap(sv); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				merge(dm, sm)
				continue
			}
		}
		dst[k] = sv
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func fromDocument(raw map[string]any) (*Config, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}

	colorOf := func(key string) *string {
		if v, ok := doc.Colors[key]; ok {
			return &v
		}
		return nil
	}

	font := strings.TrimSpace(doc.Font)
	if font == "" {
		font = DefaultFont
	}

	return &Config{
		Background:     ResolveColor(colorOf("background"), defaultColors["background"]),
		Dial:           ResolveColor(colorOf("dial"), defaultColors["dial"]),
		HourMark:       ResolveColor(colorOf("hour_mark"), defaultColors["hour_mark"]),
		MinuteMark:     ResolveColor(colorOf("minute_mark"), defaultColors["minute_mark"]),
		HourHand:       ResolveColor(colorOf("hour_hand"), defaultColors["hour_hand"]),
		MinuteHand:     ResolveColor(colorOf("minute_hand"), defaultColors["minute_hand"]),
		SecondHand:     ResolveColor(colorOf("second_hand"), defaultColors["second_hand"]),
		DateBackground: ResolveColor(colorOf("date_background"), defaultColors["date_background"]),
		Date:           ResolveColor(colorOf("date"), defaultColors["date"]),
		Font:           font,
		Chime:          doc.Chime,
		Window: Window{
			X:           doc.Window.X,
			Y:           doc.Window.Y,
			Width:       doc.Window.Width,
			Height:      doc.Window.Height,
			Frameless:   doc.Window.Frameless,
			AlwaysOnTop: doc.Window.AlwaysOnTop,
			Tool:        doc.Window.Tool,
			Opacity:     doc.Window.Opacity,
		},
	}, nil
}

func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		v = SchemaVersion
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}
	if !supportedVersions.Check(ver) {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}
	return nil
}

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}
