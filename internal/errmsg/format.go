// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad Op = "load configuration"
	OpLogOpen    Op = "open log file"

	// Content
	OpContentLoad   Op = "load portfolio content"
	OpContentReload Op = "reload portfolio content"

	// Soundtrack
	OpAudioOpen     Op = "open background track"
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Preferences
	OpPrefsLoad Op = "load preferences"

	// Hosts
	OpServerStart Op = "start web server"
	OpMPRISStart  Op = "start media controls"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error carries a failed operation up to the code that reports it.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string {
	return FormatWith(e.Op, e.Context, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns nil for a nil err.
func Wrap(op Op, err error) error {
	return WrapWith(op, "", err)
}

// WrapWith is Wrap with context, usually a file name.
func WrapWith(op Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Context: context, Err: err}
}
