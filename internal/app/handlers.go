package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/folio/internal/app/handler"
	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/ui/playerbar"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// handleGlobalKeys handles q, ? and t.
func (m *Model) handleGlobalKeys(action keymap.Action) handler.Result {
	switch action { //nolint:exhaustive // only handling global actions
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return handler.HandledNoCmd
	case keymap.ActionToggleTheme:
		t := styles.Toggle()
		m.log.WithField("theme", t.Name).Debug("theme switched")
		m.savePreferences()
		m.resize()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handlePlaybackKeys handles space, seeks, v, m and +/-.
func (m *Model) handlePlaybackKeys(action keymap.Action) handler.Result {
	switch action { //nolint:exhaustive // only handling playback actions
	case keymap.ActionPlayPause, keymap.ActionSeekBack, keymap.ActionSeekForward,
		keymap.ActionSeekBackLong, keymap.ActionSeekForwardLong,
		keymap.ActionTogglePlayerDisplay, keymap.ActionToggleMute,
		keymap.ActionVolumeUp, keymap.ActionVolumeDown:
	default:
		return handler.NotHandled
	}
	if m.player == nil {
		return handler.HandledNoCmd
	}

	switch action { //nolint:exhaustive // filtered above
	case keymap.ActionPlayPause:
		return handler.Handled(m.togglePlayback())
	case keymap.ActionSeekBack:
		m.seek(-m.seekStep)
	case keymap.ActionSeekForward:
		m.seek(m.seekStep)
	case keymap.ActionSeekBackLong:
		m.seek(-3 * m.seekStep)
	case keymap.ActionSeekForwardLong:
		m.seek(3 * m.seekStep)
	case keymap.ActionTogglePlayerDisplay:
		m.togglePlayerDisplayMode()
	case keymap.ActionToggleMute:
		if m.mixer != nil {
			m.mixer.SetMuted(!m.mixer.Muted())
			m.savePreferences()
		}
	case keymap.ActionVolumeUp:
		m.changeVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.changeVolume(-volumeStep)
	}
	return handler.HandledNoCmd
}

// togglePlayback flips play/pause. When the same input already started
// playback through a pending retry, the toggle is consumed by it.
func (m *Model) togglePlayback() tea.Cmd {
	if m.player == nil {
		return nil
	}
	if m.retried {
		return nil
	}
	p := m.player
	return func() tea.Msg {
		return PlayResultMsg{Err: p.Toggle(context.Background())}
	}
}

func (m *Model) seek(delta time.Duration) {
	m.player.SeekRelative(delta)
	m.refreshPlayback()
}

func (m *Model) changeVolume(delta float64) {
	if m.mixer == nil {
		return
	}
	m.mixer.SetVolume(m.mixer.Volume() + delta)
	if m.mixer.Muted() && delta > 0 {
		m.mixer.SetMuted(false)
	}
	m.savePreferences()
}

func (m *Model) togglePlayerDisplayMode() {
	if m.DisplayMode == playerbar.ModeCompact {
		m.DisplayMode = playerbar.ModeExpanded
	} else {
		m.DisplayMode = playerbar.ModeCompact
	}
	m.resize()
}

// handleNavigationKeys handles section jumps and scrolling.
func (m *Model) handleNavigationKeys(action keymap.Action) handler.Result {
	switch action { //nolint:exhaustive // only handling navigation actions
	case keymap.ActionNextSection:
		m.scrollTo(portfolio.NextSection(m.Active))
	case keymap.ActionPrevSection:
		m.scrollTo(portfolio.PrevSection(m.Active))
	case keymap.ActionScrollDown:
		m.scrollBy(1)
	case keymap.ActionScrollUp:
		m.scrollBy(-1)
	case keymap.ActionPageDown:
		m.scrollBy(m.page.Height)
	case keymap.ActionPageUp:
		m.scrollBy(-m.page.Height)
	case keymap.ActionJumpStart:
		m.page.GotoTop()
		m.updateActive()
	case keymap.ActionJumpEnd:
		m.page.GotoBottom()
		m.updateActive()
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) scrollBy(rows int) {
	m.page.SetYOffset(m.page.YOffset + rows)
	m.updateActive()
}

// handleProjectKeys handles the technology filter.
func (m *Model) handleProjectKeys(action keymap.Action) handler.Result {
	switch action { //nolint:exhaustive // only handling project actions
	case keymap.ActionCycleFilter:
		m.Filter = m.currentContent().NextFilter(m.Filter)
		m.resize()
		m.scrollTo(portfolio.SectionProjects)
		return handler.HandledNoCmd
	case keymap.ActionClearFilter:
		if m.Filter == portfolio.FilterAll {
			return handler.NotHandled
		}
		m.Filter = portfolio.FilterAll
		m.resize()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}
