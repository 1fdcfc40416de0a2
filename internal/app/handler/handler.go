// Package handler routes a resolved key action through prioritized handlers.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/keymap"
)

// Result is the outcome of offering an action to one handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled passes the action to the next handler.
var NotHandled = Result{}

// HandledNoCmd consumes the action without a command.
var HandledNoCmd = Result{Handled: true}

// Handled consumes the action and returns cmd.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler reacts to one action.
type Handler func(action keymap.Action) Result

// Chain offers action to each handler in order and stops at the first one
// that handles it. An unbound key (empty action) reaches no handler.
func Chain(action keymap.Action, handlers ...Handler) (bool, tea.Cmd) {
	if action == "" {
		return false, nil
	}
	for _, h := range handlers {
		if r := h(action); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
