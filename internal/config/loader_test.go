package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Background.A != 0 {
		t.Errorf("Background = %v, want transparent", cfg.Background)
	}
	if cfg.Dial != (color.NRGBA{255, 255, 255, 0}) {
		t.Errorf("Dial = %v, want transparent white", cfg.Dial)
	}
	if cfg.SecondHand != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("SecondHand = %v, want red", cfg.SecondHand)
	}
	if cfg.Date != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("Date = %v, want white", cfg.Date)
	}
	want := Window{X: -200, Y: -200, Width: 200, Height: 200, Frameless: true, AlwaysOnTop: true, Tool: true, Opacity: 1}
	if cfg.Window != want {
		t.Errorf("Window = %+v, want %+v", cfg.Window, want)
	}
	if cfg.Font != DefaultFont {
		t.Errorf("Font = %q, want %q", cfg.Font, DefaultFont)
	}
	if cfg.Chime {
		t.Error("Chime enabled by default")
	}
}

func TestParseDeepMergeKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("colors:\n  dial: '#336699'\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if cfg.Dial != (color.NRGBA{0x33, 0x66, 0x99, 0xff}) {
		t.Errorf("Dial = %v, want #336699", cfg.Dial)
	}

	def := Default()
	def.Dial = cfg.Dial
	if *cfg != *def {
		t.Errorf("Parse = %+v, want defaults except dial %+v", cfg, def)
	}
}

func TestParseFlatAndGroupedAgree(t *testing.T) {
	flat := `
background_color: '#FFFFFF'
hour_mark_color: red
minute_mark_color: 'rgb(1,2,3)'
second_hand_color: none
date_background_color: transparent
frameless: false
tool: false
window:
  x: 10
  y: -50
  width: 300
  height: 250
`
	grouped := `
version: 2
colors:
  background: '#FFFFFF'
  hour_mark: red
  minute_mark_color: 'rgb(1,2,3)'
  second_hand: none
  date_background: transparent
window:
  x: 10
  y: -50
  width: 300
  height: 250
  frameless: false
  tool: false
`
	a, err := Parse([]byte(flat))
	if err != nil {
		t.Fatalf("Parse(flat) error: %v", err)
	}
	b, err := Parse([]byte(grouped))
	if err != nil {
		t.Fatalf("Parse(grouped) error: %v", err)
	}
	if *a != *b {
		t.Errorf("flat = %+v\ngrouped = %+v", a, b)
	}

	if a.HourMark != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("HourMark = %v, want red", a.HourMark)
	}
	if a.SecondHand.A != 0 || a.DateBackground.A != 0 {
		t.Errorf("second hand %v / date background %v should be hidden", a.SecondHand, a.DateBackground)
	}
	if a.Window.Frameless || a.Window.Tool || !a.Window.AlwaysOnTop {
		t.Errorf("flags = %+v, want frameless=false tool=false always_on_top=true", a.Window)
	}
	if a.Window.X != 10 || a.Window.Y != -50 || a.Window.Width != 300 || a.Window.Height != 250 {
		t.Errorf("geometry = %+v", a.Window)
	}
}

func TestParseGroupedWinsOverFlat(t *testing.T) {
	cfg, err := Parse([]byte("dial_color: red\nframeless: true\ncolors:\n  dial: blue\nwindow:\n  frameless: false\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Dial != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("Dial = %v, want blue", cfg.Dial)
	}
	if cfg.Window.Frameless {
		t.Error("Frameless = true, want grouped value false")
	}
}

func TestParseInvalidColorOnlyAffectsItsKey(t *testing.T) {
	cfg, err := Parse([]byte("colors:\n  hour_hand: 'rgb(1,2)'\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.HourHand != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("HourHand = %v, want opaque black", cfg.HourHand)
	}
	if cfg.SecondHand != Default().SecondHand {
		t.Errorf("SecondHand = %v, want default", cfg.SecondHand)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"future version", "version: 3\n", ErrUnsupportedVersion},
		{"garbage version", "version: banana\n", ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte("colors: [unclosed\n")); err == nil {
		t.Error("Parse accepted malformed YAML")
	}
	if _, err := Parse([]byte("window:\n  x: left\n")); err == nil {
		t.Error("Parse accepted a non-integer x")
	}
}

func TestParseClampsWindow(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		width   int
		height  int
		opacity float64
	}{
		{"narrow", "window:\n  width: 90\n", 100, 200, 1},
		{"short", "window:\n  height: 50\n", 200, 100, 1},
		{"negative size", "window:\n  width: -5\n  height: 0\n", 100, 100, 1},
		{"opaque beyond one", "window:\n  opacity: 1.5\n", 200, 200, 1},
		{"negative opacity", "window:\n  opacity: -0.2\n", 200, 200, 0},
		{"in range", "window:\n  width: 150\n  opacity: 0.5\n", 150, 200, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			w := cfg.Window
			if w.Width != tt.width || w.Height != tt.height || w.Opacity != tt.opacity {
				t.Errorf("window = %dx%d opacity %g, want %dx%d opacity %g",
					w.Width, w.Height, w.Opacity, tt.width, tt.height, tt.opacity)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("clamped config fails Validate: %v", err)
			}
		})
	}
}

func TestLoadKeepsColorsWhenWindowIsClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wclock.yaml")
	if err := os.WriteFile(path, []byte("colors:\n  dial: red\nwindow:\n  width: 90\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if cfg.Dial != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("Dial = %v, want red", cfg.Dial)
	}
	if cfg.Window.Width != MinWindowSize {
		t.Errorf("Width = %d, want %d", cfg.Window.Width, MinWindowSize)
	}
	if cfg.Window.Height != 200 {
		t.Errorf("Height = %d, want default 200", cfg.Window.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		want   []error
	}{
		{"ok", Window{Width: 100, Height: 100, Opacity: 0}, nil},
		{"size", Window{Width: 99, Height: 100, Opacity: 1}, []error{ErrInvalidWindowSize}},
		{"opacity", Window{Width: 100, Height: 100, Opacity: 2}, []error{ErrInvalidOpacity}},
		{"both", Window{Width: 10, Height: 10, Opacity: -1}, []error{ErrInvalidWindowSize, ErrInvalidOpacity}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{Window: tt.window}).Validate()
			if len(tt.want) == 0 && err != nil {
				t.Fatalf("Validate = %v, want nil", err)
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Validate = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestParseNullValuesKeepDefaults(t *testing.T) {
	cfg, err := Parse([]byte("version:\nfont:\ncolors:\n  dial: red\nwindow:\n  x:\n  opacity:\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Dial != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("Dial = %v, want red", cfg.Dial)
	}
	if cfg.Window.X != -200 || cfg.Window.Opacity != 1 {
		t.Errorf("window = %+v, want default x and opacity", cfg.Window)
	}
	if cfg.Font != DefaultFont {
		t.Errorf("Font = %q, want %q", cfg.Font, DefaultFont)
	}

	// an empty color still means transparent
	cfg, err = Parse([]byte("colors:\n  second_hand:\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.SecondHand.A != 0 {
		t.Errorf("SecondHand = %v, want transparent", cfg.SecondHand)
	}

	if _, err := Parse([]byte("version: ''\n")); err != nil {
		t.Errorf("Parse with empty version string: %v", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.yaml")
	if _, err := load(missing); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("load(missing) error = %v, want ErrConfigNotFound", err)
	}
	if cfg := Load(missing); *cfg != *Default() {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("::: not yaml :::\n\t- ["), 0644); err != nil {
		t.Fatal(err)
	}
	if cfg := Load(broken); *cfg != *Default() {
		t.Errorf("Load(broken) = %+v, want defaults", cfg)
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("chime: true\nfont: gomono\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(good)
	if !cfg.Chime || cfg.Font != "gomono" {
		t.Errorf("Load(good) = %+v, want chime and gomono", cfg)
	}
}

func TestFindFile(t *testing.T) {
	home := t.TempDir()
	exeDir := t.TempDir()

	if got := findFile(home, exeDir, "wclock"); got != "wclock.yaml" {
		t.Errorf("findFile with no files = %q, want bare name", got)
	}

	local := filepath.Join(exeDir, "wclock.yaml")
	if err := os.WriteFile(local, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got := findFile(home, exeDir, "wclock"); got != local {
		t.Errorf("findFile = %q, want %q", got, local)
	}

	dot := filepath.Join(home, ".wclock.yaml")
	if err := os.WriteFile(dot, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got := findFile(home, exeDir, "wclock"); got != dot {
		t.Errorf("findFile = %q, want home file %q", got, dot)
	}
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"a": 1,
		"nested": map[string]any{"x": 1, "y": 2},
	}
	merge(dst, map[string]any{
		"a":      nil,
		"b":      2,
		"nested": map[any]any{"x": nil, "y": 3, "z": 4},
	})

	nested := dst["nested"].(map[string]any)
	if dst["a"] != 1 || dst["b"] != 2 {
		t.Errorf("top level = %v", dst)
	}
	if nested["x"] != 1 || nested["y"] != 3 || nested["z"] != 4 {
		t.Errorf("nested = %v", nested)
	}
}
