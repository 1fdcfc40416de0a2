package app

import (
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/ui/styles"
)

// applyPreferences restores theme, volume and mute. Saved preferences win
// over the configured defaults.
func (m *Model) applyPreferences(defaultTheme string, defaultVolume *float64) {
	p := state.DefaultPreferences()
	if m.prefs != nil {
		saved, err := m.prefs.GetPreferences()
		if err != nil {
			m.log.WithError(err).Warn("load preferences")
			m.ErrorMsg = errmsg.Format(errmsg.OpPrefsLoad, err)
		} else {
			p = *saved
		}
	}

	theme := p.Theme
	if theme == "" {
		theme = defaultTheme
	}
	styles.SetTheme(theme)

	if m.mixer == nil {
		return
	}
	volume := p.Volume
	if !p.Saved && defaultVolume != nil {
		volume = *defaultVolume
	}
	m.mixer.SetVolume(volume)
	m.mixer.SetMuted(p.Muted)
}

// savePreferences schedules a debounced write of the current choices.
func (m *Model) savePreferences() {
	if m.prefs == nil {
		return
	}
	p := state.Preferences{
		Theme:  styles.T().Name,
		Volume: 1,
	}
	if m.mixer != nil {
		p.Volume = m.mixer.Volume()
		p.Muted = m.mixer.Muted()
	}
	m.prefs.SavePreferences(p)
}
