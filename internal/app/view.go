package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/ui/playerbar"
	"github.com/llehouerou/folio/internal/ui/render"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	if m.Loading {
		return m.preloader.View()
	}

	parts := []string{
		m.renderHeader(),
		m.page.View(),
		m.renderStatus(),
	}
	if m.showHelp {
		parts = append(parts, m.help.View(m.helpKeys))
	}
	if m.player != nil {
		parts = append(parts, playerbar.Render(m.playerBarState(), m.Width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader shows the profile name and the section nav with the
// active section highlighted.
func (m Model) renderHeader() string {
	t := styles.T()
	name := t.S().Title.Render(render.Sanitize(m.currentContent().Profile.Name))

	nav := make([]string, 0, len(portfolio.SectionIDs))
	for _, id := range portfolio.SectionIDs {
		if id == m.Active {
			nav = append(nav, t.S().Active.Render(id))
		} else {
			nav = append(nav, t.S().Muted.Render(id))
		}
	}
	line := render.Row(" "+name, strings.Join(nav, "  ")+" ", m.Width)
	return render.Truncate(line, m.Width)
}

func (m Model) renderStatus() string {
	t := styles.T()
	var hints []string
	for _, h := range []struct {
		action keymap.Action
		label  string
	}{
		{keymap.ActionHelp, "help"},
		{keymap.ActionToggleTheme, t.Other() + " theme"},
	} {
		if keys := m.keys.KeysFor(h.action); len(keys) > 0 {
			hints = append(hints, keys[0]+" "+h.label)
		}
	}
	left := t.S().Subtle.Render(" " + strings.Join(hints, "  "))
	if m.ErrorMsg != "" {
		left = t.S().Error.Render(" " + m.ErrorMsg)
	}
	right := t.S().Subtle.Render(t.Name + " ")
	return render.Truncate(render.Row(left, right, m.Width), m.Width)
}

func (m Model) playerBarState() playerbar.State {
	s := playerbar.NewState(m.Playback, m.track, m.info, m.DisplayMode)
	if m.player != nil {
		s.RetryPending = m.player.RetryPending()
	}
	if m.mixer != nil {
		s.Volume = m.mixer.Volume()
		s.Muted = m.mixer.Muted()
	}
	return s
}
