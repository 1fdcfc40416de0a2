package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// PlayCmd issues Play off the update loop.
func PlayCmd(p Playback) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		return PlayResultMsg{Err: p.Play(context.Background())}
	}
}

// watchPlayer waits for the next controller event and converts it to a
// tea.Msg. Handlers re-arm it after each message.
func (m Model) watchPlayer() tea.Cmd {
	sub := m.playerSub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return PlayerStateMsg(e)
		case e := <-sub.Errors:
			return PlayerErrorMsg(e)
		case <-sub.Done:
			return PlayerClosedMsg{}
		}
	}
}

// watchContent waits for a content file change and reloads the store.
func (m Model) watchContent() tea.Cmd {
	ch, store := m.contentChanged, m.content
	if ch == nil || store == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ContentReloadedMsg{Err: store.Reload()}
	}
}
