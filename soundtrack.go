package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/audio"
	"github.com/llehouerou/folio/internal/config"
	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/logging"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/tags"
)

// soundtrack bundles the background track: its decoded resource, the
// controller bound to it and the tags shown in the player bar.
type soundtrack struct {
	resource   *audio.Resource
	controller *player.Controller
	tag        *tags.Tag
	log        *logrus.Entry
}

// openSoundtrack returns nil without error when no track is configured.
func openSoundtrack(cfg *config.Config, gestures *gesture.Registry, logger *logrus.Logger) (*soundtrack, error) {
	if !cfg.HasAudio() {
		return nil, nil
	}
	audioCfg := cfg.GetAudioConfig()
	policy, err := audio.ParsePolicy(audioCfg.Policy)
	if err != nil {
		return nil, errmsg.WrapWith(errmsg.OpConfigLoad, "audio.policy", err)
	}

	res, err := audio.Open(audioCfg.File,
		audio.WithPolicy(policy, gestures),
		audio.WithLoop(audioCfg.Loop),
		audio.WithTimeUpdateInterval(audioCfg.TimeUpdateInterval),
		audio.WithLogger(logging.Component(logger, "audio")),
	)
	if err != nil {
		return nil, errmsg.WrapWith(errmsg.OpAudioOpen, audioCfg.File, err)
	}

	log := logging.Component(logger, "soundtrack")
	log.WithFields(logrus.Fields{
		"path":   audioCfg.File,
		"policy": policy,
		"loop":   audioCfg.Loop,
	}).Info("soundtrack opened")

	return &soundtrack{
		resource:   res,
		controller: player.New(res, gestures, player.WithLogger(logging.Component(logger, "player"))),
		tag:        tags.ReadOrFallback(audioCfg.File),
		log:        log,
	}, nil
}

// applyVolume sets the configured initial level. The terminal UI restores
// saved preferences instead.
func (s *soundtrack) applyVolume(cfg config.AudioConfig) {
	if cfg.Volume != nil {
		s.resource.SetVolume(*cfg.Volume)
	}
}

// autoplay requests playback once. Under the gesture policy the request is
// rejected and the controller retries on the first user input.
func (s *soundtrack) autoplay(ctx context.Context, cfg config.AudioConfig) {
	if cfg.Autoplay == nil || !*cfg.Autoplay {
		return
	}
	if err := s.controller.Play(ctx); err != nil && !errors.Is(err, player.ErrPlaybackRejected) {
		s.log.WithError(err).Warn("autoplay failed")
	}
}

// Close releases the controller before the resource it is bound to.
func (s *soundtrack) Close() error {
	if s == nil {
		return nil
	}
	return errors.Join(s.controller.Close(), s.resource.Close())
}
