package game

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFrequency  = 880.0
	chimeLength     = 1200 * time.Millisecond
	chimeVolume     = 0.3
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// chime plays a short tone whenever the wall clock enters a new hour.
type chime struct {
	play     func() error
	lastHour int
	seen     bool
}

func newChime() *chime {
	return &chime{play: playChime}
}

// due reports whether now starts an hour that has not been announced yet.
// The first observation only records the hour.
func (c *chime) due(now time.Time) bool {
	h := now.Hour()
	if !c.seen {
		c.seen = true
		c.lastHour = h
		return false
	}
	if h == c.lastHour {
		return false
	}
	c.lastHour = h
	return now.Minute() == 0
}

func playChime() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/20))
	})
	if speakerErr != nil {
		return speakerErr
	}
	n := chimeSampleRate.N(chimeLength)
	speaker.Play(beep.Take(n, newDecay(sine(chimeSampleRate, chimeFrequency), n)))
	return nil
}

// sine returns an endless sine wave at freq Hz.
func sine(sr beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := math.Sin(phase) * chimeVolume
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return len(samples), true
	})
}

// decay wraps a beep.Streamer and fades it out exponentially over length samples.
type decay struct {
	Source beep.Streamer
	length int
	pos    int
}

func newDecay(src beep.Streamer, length int) *decay {
	return &decay{Source: src, length: length}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Source.Stream(samples)
	for i := 0; i < n; i++ {
		g := d.gain(d.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.Source.Err() }

// gain is 1 at the start and about 1% at length.
func (d *decay) gain(pos int) float64 {
	if d.length <= 0 || pos >= d.length {
		return 0
	}
	return math.Exp(-4.6 * float64(pos) / float64(d.length))
}
