package app

import (
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/tags"
	"github.com/llehouerou/folio/internal/ui/styles"
)

type fakeMixer struct {
	mu     sync.Mutex
	volume float64
	muted  bool
}

func (f *fakeMixer) SetVolume(level float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = max(0, min(level, 1))
}

func (f *fakeMixer) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *fakeMixer) SetMuted(muted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = muted
}

func (f *fakeMixer) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

func testContent() *portfolio.Content {
	return &portfolio.Content{
		Profile: portfolio.Profile{
			Name:    "Ada Example",
			Role:    "Backend developer",
			Tagline: "Builds quiet, reliable systems.",
			About:   "Ten years of shipping services, tooling and the occasional synth patch.",
		},
		Skills: []portfolio.Skill{{Name: "Go"}, {Name: "PostgreSQL"}},
		Projects: []portfolio.Project{
			{Title: "Relay", Description: "Message relay.", Tags: []string{"Go", "NATS"}},
			{Title: "Ledger", Description: "Double-entry ledger.", Tags: []string{"Go", "PostgreSQL"}},
			{Title: "Sketchpad", Description: "Canvas toy.", Tags: []string{"TypeScript"}},
		},
		Contacts: []portfolio.Contact{{Title: "Email", Value: "ada@example.com", Href: "mailto:ada@example.com"}},
	}
}

type testEnv struct {
	res      *player.Mock
	ctrl     *player.Controller
	gestures *gesture.Registry
	prefs    *state.Mock
	mixer    *fakeMixer
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestModel builds a sized model with a mock-backed controller and the
// intro disabled.
func newTestModel(t *testing.T, configure ...func(*Options, *testEnv)) (Model, *testEnv) {
	t.Helper()
	t.Cleanup(func() { styles.SetTheme(styles.Dark) })

	env := &testEnv{
		res:      player.NewMock(),
		gestures: gesture.NewRegistry(),
		prefs:    state.NewMock(),
		mixer:    &fakeMixer{volume: 1},
	}
	env.res.SetDuration(2 * time.Minute)

	autoplay := false
	opts := Options{
		Content:   portfolio.StaticStore(testContent()),
		Gestures:  env.gestures,
		State:     env.prefs,
		Mixer:     env.mixer,
		Logger:    quietLogger(),
		Track:     &tags.Tag{Title: "Night Drive", Artist: "Ada"},
		Audio:     config.AudioConfig{Autoplay: &autoplay, SeekStep: 5 * time.Second},
		Preloader: config.PreloaderConfig{Disabled: true},
		Theme:     styles.Dark,
	}
	for _, fn := range configure {
		fn(&opts, env)
	}

	env.ctrl = player.New(env.res, env.gestures, player.WithLogger(quietLogger()))
	t.Cleanup(func() { _ = env.ctrl.Close() })
	opts.Player = env.ctrl

	m := New(opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}
