package web

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/folio/internal/errmsg"
	"github.com/llehouerou/folio/internal/gesture"
	"github.com/llehouerou/folio/internal/player"
	"github.com/llehouerou/folio/internal/portfolio"
)

// retriedKey marks a request whose gesture already ran a pending play.
const retriedKey = "gesture_retried"

func (s *Server) currentContent() *portfolio.Content {
	if s.content == nil {
		return &portfolio.Content{}
	}
	return s.content.Get()
}

func (s *Server) getProfile(c *gin.Context) {
	content := s.currentContent()
	c.JSON(http.StatusOK, gin.H{
		"profile":  content.Profile,
		"skills":   content.Skills,
		"contacts": content.Contacts,
	})
}

func (s *Server) getProjects(c *gin.Context) {
	filter := strings.TrimSpace(c.Query("filter"))
	if filter == "" {
		filter = portfolio.FilterAll
	}
	projects := s.currentContent().FilterProjects(filter)
	if projects == nil {
		projects = []portfolio.Project{}
	}
	c.JSON(http.StatusOK, gin.H{
		"filter":   filter,
		"projects": projects,
	})
}

func (s *Server) getTechnologies(c *gin.Context) {
	techs := s.currentContent().Technologies()
	if techs == nil {
		techs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"technologies": techs})
}

func (s *Server) requirePlayer(c *gin.Context) {
	if s.player == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no soundtrack configured"})
		return
	}
	c.Next()
}

// userGesture treats a control request as user input: pending one-shot
// hooks (a blocked autoplay) run before the command itself.
func (s *Server) userGesture(c *gin.Context) {
	pending := s.gestures.Pending()
	if n := s.gestures.Fire(gesture.Click); n > 0 {
		c.Set(retriedKey, true)
		s.log.WithFields(logrus.Fields{"pending": pending, "ran": n}).Debug("gesture ran pending hooks")
	}
	c.Next()
}

// PlayerView is the JSON shape of the controller state.
type PlayerView struct {
	Status        string  `json:"status"`
	Position      string  `json:"position"`
	Duration      string  `json:"duration"`
	PositionMS    int64   `json:"position_ms"`
	DurationMS    int64   `json:"duration_ms"`
	DurationKnown bool    `json:"duration_known"`
	Progress      float64 `json:"progress"`
	RetryPending  bool    `json:"retry_pending"`
}

// NewPlayerView projects a controller state.
func NewPlayerView(st player.State, retryPending bool) PlayerView {
	return PlayerView{
		Status:        strings.ToLower(st.Status.String()),
		Position:      st.Elapsed(),
		Duration:      st.Total(),
		PositionMS:    st.Position.Milliseconds(),
		DurationMS:    st.Duration.Milliseconds(),
		DurationKnown: st.DurationKnown,
		Progress:      st.Progress(),
		RetryPending:  retryPending,
	}
}

func (s *Server) playerView() PlayerView {
	return NewPlayerView(s.player.State(), s.player.RetryPending())
}

func (s *Server) getPlayer(c *gin.Context) {
	c.JSON(http.StatusOK, s.playerView())
}

func (s *Server) postPlay(c *gin.Context) {
	if c.GetBool(retriedKey) && s.player.State().Status == player.Playing {
		c.JSON(http.StatusOK, s.playerView())
		return
	}
	s.respond(c, errmsg.OpPlaybackStart, s.player.Play(c.Request.Context()))
}

func (s *Server) postPause(c *gin.Context) {
	s.player.Pause()
	c.JSON(http.StatusOK, s.playerView())
}

func (s *Server) postToggle(c *gin.Context) {
	if c.GetBool(retriedKey) && s.player.State().Status == player.Playing {
		// The gesture already started playback; toggling again would
		// undo it.
		c.JSON(http.StatusOK, s.playerView())
		return
	}
	s.respond(c, errmsg.OpPlaybackStart, s.player.Toggle(c.Request.Context()))
}

// postSeek moves by ?delta= (a duration such as "-5s", or plain seconds)
// or to ?to= (absolute seconds).
func (s *Server) postSeek(c *gin.Context) {
	if raw, ok := c.GetQuery("to"); ok {
		secs, err := strconv.ParseFloat(raw, 64)
		pos, valid := player.FromSeconds(secs)
		if err == nil && !valid {
			err = fmt.Errorf("position %v out of range", secs)
		}
		if err != nil {
			s.badSeek(c, raw, err)
			return
		}
		s.log.WithField("to", player.FormatSeconds(secs)).Debug("seek")
		s.player.SeekTo(pos)
		c.JSON(http.StatusOK, s.playerView())
		return
	}

	raw := c.Query("delta")
	delta, err := parseDelta(raw)
	if err != nil {
		s.badSeek(c, raw, err)
		return
	}
	s.player.SeekRelative(delta)
	c.JSON(http.StatusOK, s.playerView())
}

func (s *Server) badSeek(c *gin.Context, raw string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": errmsg.FormatWith(errmsg.OpPlaybackSeek, raw, err)})
}

const maxSeekSeconds = float64(math.MaxInt64 / time.Second)

// parseDelta accepts a Go duration or a finite number of seconds.
func parseDelta(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(secs) || math.Abs(secs) > maxSeekSeconds {
		return 0, fmt.Errorf("invalid seek offset %q", raw)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// respond answers with the player state, or the error and the state when
// the command failed. A rejected play is a conflict: it will be retried on
// the next gesture.
func (s *Server) respond(c *gin.Context, op errmsg.Op, err error) {
	if err == nil {
		c.JSON(http.StatusOK, s.playerView())
		return
	}
	_ = c.Error(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, player.ErrPlaybackRejected):
		status = http.StatusConflict
	case errors.Is(err, player.ErrClosed):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"error":  errmsg.Format(op, err),
		"player": s.playerView(),
	})
}
