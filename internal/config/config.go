package config

import (
	"errors"
	"image/color"
)

const (
	// SchemaVersion is the version written by the grouped colors/window layout.
	SchemaVersion = "2"

	// MinWindowSize is the smallest width or height the widget accepts.
	MinWindowSize = 100

	DefaultFont = "goregular"
)

// Config is the resolved, read-only clock configuration.
// It is built once at startup and shared by pointer; nothing mutates it afterwards.
type Config struct {
	Background     color.NRGBA
	Dial           color.NRGBA
	HourMark       color.NRGBA
	MinuteMark     color.NRGBA
	HourHand       color.NRGBA
	MinuteHand     color.NRGBA
	SecondHand     color.NRGBA
	DateBackground color.NRGBA
	Date           color.NRGBA

	Font  string
	Chime bool

	Window Window
}

// Window describes where and how the clock window is created.
// Negative X or Y are offsets from the right or bottom screen edge.
type Window struct {
	X, Y          int
	Width, Height int
	Frameless     bool
	AlwaysOnTop   bool
	Tool          bool
	Opacity       float64
}

// Visible reports whether c should be painted at all.
func Visible(c color.NRGBA) bool {
	return c.A != 0
}

// Default returns the embedded configuration used when no usable file exists.
func Default() *Config {
	cfg, err := fromDocument(defaultDocument())
	if err != nil {
		// the embedded document is static; failing here is a programming error
		panic(err)
	}
	return cfg
}

// Validate checks the window descriptor and reports every out-of-range value.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width < MinWindowSize || c.Window.Height < MinWindowSize {
		errs = append(errs, ErrInvalidWindowSize)
	}
	if c.Window.Opacity < 0.0 || c.Window.Opacity > 1.0 {
		errs = append(errs, ErrInvalidOpacity)
	}
	return errors.Join(errs...)
}

// clampWindow forces the window descriptor into range.
// It returns what Validate reported before the change.
func (c *Config) clampWindow() error {
	err := c.Validate()
	c.Window.Width = max(c.Window.Width, MinWindowSize)
	c.Window.Height = max(c.Window.Height, MinWindowSize)
	c.Window.Opacity = clamp01(c.Window.Opacity)
	return err
}
