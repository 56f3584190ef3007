package game

import (
	"errors"
	"log"

	"github.com/ncruces/zenity"
)

// quitPrompt asks, off the game loop, whether the frameless clock should close.
type quitPrompt struct {
	ask     func() error
	answers chan bool
	open    bool
}

func newQuitPrompt() *quitPrompt {
	return &quitPrompt{
		ask:     askQuit,
		answers: make(chan bool, 1),
	}
}

func askQuit() error {
	return zenity.Question("Close the clock?",
		zenity.Title(windowTitle),
		zenity.QuestionIcon,
		zenity.OKLabel("Close"),
		zenity.CancelLabel("Keep"),
	)
}

// show opens the dialog unless one is already showing.
func (q *quitPrompt) show() {
	if q.open {
		return
	}
	q.open = true
	go func() {
		err := q.ask()
		if err != nil && !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("Warning: quit dialog failed: %v", err)
		}
		q.answers <- err == nil
	}()
}

// confirmed reports whether the user accepted a dialog since the last call.
func (q *quitPrompt) confirmed() bool {
	select {
	case ok := <-q.answers:
		q.open = false
		return ok
	default:
		return false
	}
}
