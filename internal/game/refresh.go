package game

import (
	"time"

	"github.com/iburimskiy/wclock/internal/config"
)

const (
	fastRefresh = 100 * time.Millisecond
	slowRefresh = time.Second
)

// Refresh decides when the face is repainted.
// The interval is fixed at construction: fast while a second hand is shown.
type Refresh struct {
	interval time.Duration
	last     time.Time
}

func NewRefresh(cfg *config.Config) *Refresh {
	interval := slowRefresh
	if config.Visible(cfg.SecondHand) {
		interval = fastRefresh
	}
	return &Refresh{interval: interval}
}

func (r *Refresh) Interval() time.Duration {
	return r.interval
}

// Due reports whether a repaint is needed at now and, if so, starts the next period.
func (r *Refresh) Due(now time.Time) bool {
	if !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return false
	}
	r.last = now
	return true
}
