// Package app is the Bubble Tea host: the intro counter, the portfolio page
// and the soundtrack player bar.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/audio"
	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/keymap"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/tags"
	"github.com/llehouerou/folio/internal/ui/playerbar"
	"github.com/llehouerou/folio/internal/ui/preloader"
	"github.com/llehouerou/folio/internal/ui/styles"
)

const volumeStep = 0.1

// Options wires the model to its collaborators. Player and Mixer are nil
// when no soundtrack is configured.
type Options struct {
	Content  *portfolio.Store
	Player   Playback
	Mixer    Mixer
	Gestures *gesture.Registry
	State    state.Interface
	Logger   *logrus.Entry

	Track *tags.Tag
	Info  audio.Info

	Audio     config.AudioConfig
	Preloader config.PreloaderConfig
	Theme     string

	// ContentChanged receives a value whenever the content file changes.
	ContentChanged <-chan struct{}
}

// Model is the root application model.
type Model struct {
	content  *portfolio.Store
	player   Playback
	mixer    Mixer
	gestures *gesture.Registry
	prefs    state.Interface
	log      *logrus.Entry

	keys     *keymap.Resolver
	help     help.Model
	helpKeys keymap.Help
	showHelp bool

	Loading   bool
	preloader preloader.Model

	page     viewport.Model
	sections []portfolio.Section
	Active   string
	Filter   string

	playerSub   *player.Subscription
	Playback    player.State
	track       *tags.Tag
	info        audio.Info
	DisplayMode playerbar.DisplayMode

	autoplay bool
	seekStep time.Duration
	retried  bool

	contentChanged <-chan struct{}

	ErrorMsg string
	Width    int
	Height   int
}

// New builds the model and applies saved preferences.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	gestures := opts.Gestures
	if gestures == nil {
		gestures = gesture.NewRegistry()
	}

	m := Model{
		content:        opts.Content,
		player:         opts.Player,
		mixer:          opts.Mixer,
		gestures:       gestures,
		prefs:          opts.State,
		log:            log,
		keys:           keymap.Default(),
		help:           help.New(),
		helpKeys:       keymap.NewHelp(keymap.Bindings),
		page:           viewport.New(0, 0),
		Active:         portfolio.SectionHome,
		Filter:         portfolio.FilterAll,
		track:          opts.Track,
		info:           opts.Info,
		DisplayMode:    playerbar.ModeCompact,
		autoplay:       opts.Player != nil && opts.Audio.Autoplay != nil && *opts.Audio.Autoplay,
		seekStep:       opts.Audio.SeekStep,
		contentChanged: opts.ContentChanged,
	}
	if m.seekStep <= 0 {
		m.seekStep = 5 * time.Second
	}

	pre := opts.Preloader
	if !pre.Disabled {
		m.Loading = true
		m.preloader = preloader.New(pre.Duration, pre.Reveal, time.Now())
	}

	m.applyPreferences(opts.Theme, opts.Audio.Volume)
	if m.player != nil {
		m.playerSub = m.player.Subscribe()
		m.Playback = m.player.State()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.watchPlayer(),
		m.watchContent(),
	}
	if m.Loading {
		cmds = append(cmds, m.preloader.Init())
	}
	if m.autoplay {
		cmds = append(cmds, PlayCmd(m.player))
	}
	return tea.Batch(cmds...)
}

func (m Model) currentContent() *portfolio.Content {
	if m.content == nil {
		return &portfolio.Content{}
	}
	return m.content.Get()
}

// Theme returns the active theme name.
func (m Model) Theme() string {
	return styles.T().Name
}
