package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/player"
)

// PlaybackMessage is implemented by messages about the soundtrack.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// PlayerStateMsg carries a controller state change.
type PlayerStateMsg player.StateChange

func (PlayerStateMsg) playbackMessage() {}

// PlayerErrorMsg carries a failed controller command.
type PlayerErrorMsg player.ErrorEvent

func (PlayerErrorMsg) playbackMessage() {}

// PlayerClosedMsg is sent once the controller has been closed.
type PlayerClosedMsg struct{}

func (PlayerClosedMsg) playbackMessage() {}

// PlayResultMsg reports the outcome of a Play issued from a command.
type PlayResultMsg struct {
	Err error
}

func (PlayResultMsg) playbackMessage() {}

// ContentReloadedMsg is sent after the content file changed on disk.
type ContentReloadedMsg struct {
	Err error
}
