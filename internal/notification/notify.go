package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

type Notifier interface {
	Notify(message string, v ...any)
}

type BeepDecorator struct {
	Title string
}

func (b BeepDecorator) Notify(message string, v ...any) {
	_ = beeep.Notify(b.Title, fmt.Sprintf(message, v...), "")
}

// New returns a desktop notifier, or one that drops messages when
// notifications are disabled.
func New(enabled bool) Notifier {
	if enabled {
		return BeepDecorator{Title: "clipdrop"}
	}
	return NullNotifier{}
}

type NullNotifier struct{}

func (n NullNotifier) Notify(string, ...any) {}

// Copied is the user-facing summary of a clipboard write. asText marks the
// plain-text fallback, where only the paths were copied.
func Copied(n int, asText bool) string {
	switch {
	case asText && n == 1:
		return "File path copied"
	case asText:
		return "File paths copied"
	case n == 1:
		return "File copied to clipboard!"
	default:
		return fmt.Sprintf("%d files copied to clipboard!", n)
	}
}
