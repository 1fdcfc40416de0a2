package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/app"
	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/logging"
	"github.com/llehouerou/folio/internal/mpris"
	"github.com/llehouerou/folio/internal/portfolio"
	"github.com/llehouerou/folio/internal/state"
	"github.com/llehouerou/folio/internal/stderr"
	"github.com/llehouerou/folio/internal/web"
)

type flags struct {
	serve   bool
	debug   bool
	config  string
	content string
	addr    string
}

func parseFlags() flags {
	var f flags
	flag.BoolVar(&f.serve, "serve", false, "serve the portfolio over HTTP instead of the terminal UI")
	flag.BoolVar(&f.debug, "debug", false, "log at debug level")
	flag.StringVar(&f.config, "config", "", "config file (overrides the default locations)")
	flag.StringVar(&f.content, "content", "", "portfolio content TOML (overrides the config)")
	flag.StringVar(&f.addr, "addr", "", "HTTP listen address (overrides the config)")
	flag.Parse()
	return f
}

func main() {
	if err := run(parseFlags()); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("folio: %v\n", err))
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	if f.content != "" {
		cfg.Content = f.content
	}
	if cfg.Content == "" {
		return errors.New("no content file: set content in config.toml or pass --content")
	}

	logger, logCloser, err := logging.New(logging.Options{Debug: f.debug, Console: f.serve})
	if err != nil {
		return errmsg.Wrap(errmsg.OpLogOpen, err)
	}
	defer logCloser.Close()
	log := logging.Component(logger, "main")

	if !f.serve {
		// ALSA and friends write to fd 2, which would corrupt the TUI.
		if err := stderr.Start(logging.Component(logger, "stderr")); err != nil {
			log.WithError(err).Warn("stderr capture unavailable")
		}
		defer stderr.Stop()
	}

	store, err := portfolio.NewStore(cfg.Content)
	if err != nil {
		return errmsg.WrapWith(errmsg.OpContentLoad, cfg.Content, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var prefs *state.Manager
	if !f.serve {
		prefs, err = state.Open(logging.Component(logger, "state"))
		if err != nil {
			return errmsg.Wrap(errmsg.OpPrefsLoad, err)
		}
		defer prefs.Close()
	}

	gestures := gesture.NewRegistry()
	track, err := openSoundtrack(cfg, gestures, logger)
	if err != nil {
		return err
	}
	defer track.Close()

	if cfg.MPRISEnabled() && track != nil {
		adapter, err := mpris.New(mpris.Options{
			Player:   track.controller,
			Gestures: gestures,
			Mixer:    track.resource,
			Track:    track.tag,
			Logger:   logging.Component(logger, "mpris"),
		})
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	if f.serve {
		return serve(ctx, cfg, f.addr, store, track, gestures, logger)
	}
	return runTUI(ctx, cfg, store, prefs, track, gestures, logger)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func serve(
	ctx context.Context,
	cfg *config.Config,
	addr string,
	store *portfolio.Store,
	track *soundtrack,
	gestures *gesture.Registry,
	logger *logrus.Logger,
) error {
	srvCfg := cfg.GetServerConfig()
	if addr == "" {
		addr = srvCfg.Addr
	}
	gin.SetMode(srvCfg.GinMode)

	log := logging.Component(logger, "content")
	if err := config.Watch(ctx, store.Path(), log, func() {
		if err := store.Reload(); err != nil {
			log.WithError(err).Warn("content reload failed, keeping previous version")
			return
		}
		log.Info("content reloaded")
	}); err != nil {
		log.WithError(err).Warn("content watch unavailable")
	}

	opts := web.Options{
		Content:  store,
		Gestures: gestures,
		Logger:   logging.Component(logger, "http"),
	}
	if track != nil {
		opts.Player = track.controller
		track.applyVolume(cfg.GetAudioConfig())
		track.autoplay(ctx, cfg.GetAudioConfig())
	}

	logging.Component(logger, "main").WithField("addr", addr).Info("serving")
	return errmsg.WrapWith(errmsg.OpServerStart, addr, web.New(opts).Run(ctx, addr))
}

func runTUI(
	ctx context.Context,
	cfg *config.Config,
	store *portfolio.Store,
	prefs *state.Manager,
	track *soundtrack,
	gestures *gesture.Registry,
	logger *logrus.Logger,
) error {
	changed := make(chan struct{}, 1)
	if err := config.Watch(ctx, store.Path(), logging.Component(logger, "content"), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		logging.Component(logger, "main").WithError(err).Warn("content watch unavailable")
	}

	opts := app.Options{
		Content:        store,
		Gestures:       gestures,
		State:          prefs,
		Logger:         logging.Component(logger, "app"),
		Audio:          cfg.GetAudioConfig(),
		Preloader:      cfg.GetPreloaderConfig(),
		Theme:          cfg.GetTheme(),
		ContentChanged: changed,
	}
	if track != nil {
		opts.Player = track.controller
		opts.Mixer = track.resource
		opts.Track = track.tag
		opts.Info = track.resource.Info()
	}

	p := tea.NewProgram(
		app.New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
