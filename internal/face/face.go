// Package face paints the analog clock face onto any Canvas.
//
// All geometry is expressed in dial units: the origin is the widget center and
// the dial radius is 100 regardless of the widget's pixel size. Angles are in
// degrees, 0 at 12 o'clock, growing clockwise.
package face

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/wclock/internal/config"
)

// Dial geometry, in dial units.
const (
	DialRadius = 100

	HourTickInner   = 88
	HourTickOuter   = 96
	HourTickWidth   = 2
	MinuteTickInner = 92
	MinuteTickOuter = 96
	MinuteTickWidth = 1

	HourHandLength   = 50
	HourHandWidth    = 6
	MinuteHandLength = 70
	MinuteHandWidth  = 4
	SecondHandLength = 90
	SecondHandWidth  = 2

	// BadgeX, BadgeY, BadgeSize place the date badge just inside 3 o'clock.
	BadgeX      = 80
	BadgeY      = -10
	BadgeSize   = 20
	BadgeRadius = 5
	// BadgeFontSize is 10pt at 96 DPI.
	BadgeFontSize = 10 * 96.0 / 72.0
)

// Cap selects how stroke ends are drawn.
type Cap int

const (
	CapButt Cap = iota
	CapRound
)

// Canvas is a 2D immediate-mode surface with an affine transform stack.
// Coordinates passed to the drawing calls are in the current transformed space.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(deg float64)
	Scale(sx, sy float64)

	FillCircle(cx, cy, r float64, clr color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, cap Cap, clr color.NRGBA)
	FillRoundedRect(x, y, w, h, radius float64, clr color.NRGBA)
	// DrawText centers s inside the given rectangle.
	DrawText(x, y, w, h float64, s string, size float64, clr color.NRGBA)
}

// HourAngle returns the hour hand rotation for t.
func HourAngle(t time.Time) float64 {
	return 30 * (float64(t.Hour()) + float64(t.Minute())/60)
}

// MinuteAngle returns the minute hand rotation for t.
func MinuteAngle(t time.Time) float64 {
	return 6 * (float64(t.Minute()) + float64(t.Second())/60)
}

// SecondAngle returns the second hand rotation for t, including milliseconds.
func SecondAngle(t time.Time) float64 {
	ms := t.Nanosecond() / int(time.Millisecond)
	return 6 * (float64(t.Second()) + float64(ms)/1000)
}

// Scale returns the pixels per dial unit for a widget of the given size.
func Scale(width, height int) float64 {
	return float64(min(width, height)) / 2 / DialRadius
}

// DayLabel is the text shown in the date badge.
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%02d", t.Day())
}

// Paint draws the complete face for time now onto cv, which is width x height pixels.
func Paint(cv Canvas, width, height int, now time.Time, cfg *config.Config) {
	s := Scale(width, height)

	cv.Save()
	defer cv.Restore()

	cv.Translate(float64(width)/2, float64(height)/2)
	cv.Scale(s, s)

	if config.Visible(cfg.Dial) {
		cv.FillCircle(0, 0, DialRadius, cfg.Dial)
	}

	if config.Visible(cfg.HourMark) {
		for i := 0; i < 12; i++ {
			cv.StrokeLine(HourTickInner, 0, HourTickOuter, 0, HourTickWidth, CapButt, cfg.HourMark)
			cv.Rotate(30)
		}
	}

	if config.Visible(cfg.MinuteMark) {
		for i := 0; i < 60; i++ {
			if i%5 != 0 {
				cv.StrokeLine(MinuteTickInner, 0, MinuteTickOuter, 0, MinuteTickWidth, CapButt, cfg.MinuteMark)
			}
			cv.Rotate(6)
		}
	}

	if config.Visible(cfg.DateBackground) {
		cv.FillRoundedRect(BadgeX, BadgeY, BadgeSize, BadgeSize, BadgeRadius, cfg.DateBackground)
		if config.Visible(cfg.Date) {
			cv.DrawText(BadgeX, BadgeY, BadgeSize, BadgeSize, DayLabel(now), BadgeFontSize, cfg.Date)
		}
	}

	hand(cv, HourAngle(now), HourHandLength, HourHandWidth, cfg.HourHand)
	hand(cv, MinuteAngle(now), MinuteHandLength, MinuteHandWidth, cfg.MinuteHand)
	hand(cv, SecondAngle(now), SecondHandLength, SecondHandWidth, cfg.SecondHand)
}

func hand(cv Canvas, deg, length, width float64, clr color.NRGBA) {
	if !config.Visible(clr) {
		return
	}
	cv.Save()
	cv.Rotate(deg)
	cv.StrokeLine(0, 0, 0, -length, width, CapRound, clr)
	cv.Restore()
}
