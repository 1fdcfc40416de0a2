package app

import (
	"errors"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/app/handler"
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/ui/playerbar"
	"github.com/llehouerou/folio/internal/ui/preloader"
)

const wheelStep = 3

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.preloader, _ = m.preloader.Update(msg)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case preloader.TickMsg:
		var cmd tea.Cmd
		m.preloader, cmd = m.preloader.Update(msg)
		return m, cmd

	case preloader.DoneMsg:
		m.Loading = false
		m.resize()
		return m, nil

	case PlaybackMessage:
		return m.handlePlaybackMessage(msg)

	case ContentReloadedMsg:
		return m.handleContentReloaded(msg)
	}

	return m, nil
}

// fireGesture reports user input to the gesture registry before the input
// is dispatched, so a rejected autoplay is retried first.
func (m *Model) fireGesture(kind gesture.Kind) {
	m.retried = m.gestures.Fire(kind) > 0
	if m.retried {
		m.log.WithField("gesture", kind.String()).Debug("gesture ran pending hooks")
	}
	m.refreshPlayback()
}

func (m *Model) refreshPlayback() {
	if m.player != nil {
		m.Playback = m.player.State()
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.fireGesture(gesture.KeyPress)

	if m.Loading {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.preloader, cmd = m.preloader.Update(msg)
		return m, cmd
	}

	_, cmd := handler.Chain(m.keys.ResolveMsg(msg),
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
		m.handleNavigationKeys,
		m.handleProjectKeys,
	)
	return m, cmd
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown
	press := msg.Action == tea.MouseActionPress
	if press && !wheel {
		m.fireGesture(gesture.Click)
	}
	if m.Loading {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
	case press && msg.Button == tea.MouseButtonLeft && m.inPlayerBar(msg.Y):
		return m, m.togglePlayback()
	}
	return m, nil
}

func (m Model) inPlayerBar(y int) bool {
	return m.player != nil && y >= m.Height-playerbar.Height(m.DisplayMode)
}

func (m Model) handlePlaybackMessage(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PlayerStateMsg:
		m.Playback = msg.Current
		return m, m.watchPlayer()

	case PlayerErrorMsg:
		if errors.Is(msg.Err, player.ErrPlaybackRejected) {
			// Not an error for the user: the player bar shows the
			// retry hint until the next key press.
			m.log.WithField("retrying", msg.Retrying).Debug("autoplay blocked")
		} else {
			m.log.WithError(msg.Err).WithField("operation", msg.Operation).Warn("playback command failed")
			m.ErrorMsg = errmsg.Format(errmsg.OpPlaybackStart, msg.Err)
		}
		return m, m.watchPlayer()

	case PlayerClosedMsg:
		m.playerSub = nil
		return m, nil

	case PlayResultMsg:
		m.refreshPlayback()
		return m, nil
	}
	return m, nil
}

func (m Model) handleContentReloaded(msg ContentReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.WithError(msg.Err).Warn("content reload failed, keeping previous content")
		m.ErrorMsg = errmsg.Format(errmsg.OpContentReload, msg.Err)
		return m, m.watchContent()
	}

	m.log.Info("content reloaded")
	m.ErrorMsg = ""
	if !m.filterAvailable() {
		m.Filter = portfolio.FilterAll
	}
	m.resize()
	return m, m.watchContent()
}

func (m Model) filterAvailable() bool {
	return m.Filter == portfolio.FilterAll ||
		slices.Contains(m.currentContent().Technologies(), m.Filter)
}
