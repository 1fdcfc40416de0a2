// Package web serves the portfolio content and the soundtrack controls
// over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/portfolio"
)

const shutdownTimeout = 5 * time.Second

// Controls is the controller surface exposed over HTTP.
type Controls interface {
	Play(ctx context.Context) error
	Pause()
	Toggle(ctx context.Context) error
	SeekRelative(delta time.Duration) time.Duration
	SeekTo(pos time.Duration) time.Duration
	State() player.State
	RetryPending() bool
}

var _ Controls = (*player.Controller)(nil)

// Options configures a Server. Player is nil when no soundtrack is
// configured; the player endpoints then answer 404.
type Options struct {
	Content  *portfolio.Store
	Player   Controls
	Gestures *gesture.Registry
	Logger   *logrus.Entry
}

// Server is the HTTP host.
type Server struct {
	content  *portfolio.Store
	player   Controls
	gestures *gesture.Registry
	log      *logrus.Entry
	engine   *gin.Engine
}

// New builds the router. Call gin.SetMode before New to pick the mode.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	gestures := opts.Gestures
	if gestures == nil {
		gestures = gesture.NewRegistry()
	}

	s := &Server{
		content:  opts.Content,
		player:   opts.Player,
		gestures: gestures,
		log:      log,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger(log))
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/profile", s.getProfile)
	api.GET("/projects", s.getProjects)
	api.GET("/technologies", s.getTechnologies)

	p := api.Group("/player", s.requirePlayer)
	p.GET("", s.getPlayer)
	p.POST("/play", s.userGesture, s.postPlay)
	p.POST("/pause", s.userGesture, s.postPause)
	p.POST("/toggle", s.userGesture, s.postToggle)
	p.POST("/seek", s.userGesture, s.postSeek)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}

// requestLogger logs one line per request through logrus.
func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Warn("request failed")
			return
		}
		entry.Debug("request")
	}
}
