package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/rankcard/internal/members"
	"github.com/youruser/rankcard/internal/rankcard"
	"github.com/youruser/rankcard/internal/share"
)

// Server bundles what the handlers need: the renderer, the shared card
// style, and where member records live.
type Server struct {
	Renderer       *rankcard.Renderer
	Settings       rankcard.Settings
	DataDir        string
	ProfileBaseURL string
}

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// rankcardHandler renders a card from the values in the request body.
func (s *Server) rankcardHandler(c *gin.Context) {
	var req struct {
		Background string `json:"background"`
		Avatar     string `json:"avatar"`
		Username   string `json:"username"`
		Level      uint   `json:"level"`
		CurrentXP  uint   `json:"current_xp"`
		MaxXP      uint   `json:"max_xp"`
		BarColor   string `json:"bar_color"`
		TextColor  string `json:"text_color"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := s.Settings
	if req.Background != "" {
		settings.Background = rankcard.SourceFromString(req.Background)
	}
	if req.BarColor != "" {
		settings.BarColor = req.BarColor
	}
	if req.TextColor != "" {
		settings.TextColor = req.TextColor
	}

	buf, err := s.Renderer.Create(c.Request.Context(), rankcard.RankCard{
		Settings:  settings,
		Avatar:    req.Avatar,
		Level:     req.Level,
		Username:  req.Username,
		CurrentXP: req.CurrentXP,
		MaxXP:     req.MaxXP,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf)
}

// membersHandler lists stored members, filtered by query params.
func (s *Server) membersHandler(c *gin.Context) {
	all, err := members.LoadMembersFromDataDir(s.DataDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	opt := members.FilterOptions{FreeWords: c.Query("q")}
	if ids := c.Query("ids"); ids != "" {
		opt.IDs = strings.Split(ids, ",")
	}
	if v, err := strconv.ParseUint(c.Query("min_level"), 10, 64); err == nil {
		opt.MinLevel = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("max_level"), 10, 64); err == nil {
		opt.MaxLevel = uint(v)
	}
	out := members.Filter(all, opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "members": out})
}

// leaderboardHandler returns members in rank order, as JSON or plain text.
func (s *Server) leaderboardHandler(c *gin.Context) {
	all, err := members.LoadMembersFromDataDir(s.DataDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, members.ExportLeaderboardText(all))
		return
	}
	ranked := members.SortByProgress(all)
	c.JSON(http.StatusOK, gin.H{"count": len(ranked), "members": ranked})
}

// memberCardHandler renders a stored member's rank card.
func (s *Server) memberCardHandler(c *gin.Context) {
	all, err := members.LoadMembersFromDataDir(s.DataDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	m, ok := members.FindByID(all, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}
	buf, err := s.Renderer.Create(c.Request.Context(), rankcard.RankCard{
		Settings:  s.Settings,
		Avatar:    m.AvatarURL,
		Level:     m.Level,
		Username:  m.Username,
		CurrentXP: m.CurrentXP,
		MaxXP:     m.MaxXP,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf)
}

// memberQRHandler returns a QR code PNG linking to the member's profile.
func (s *Server) memberQRHandler(c *gin.Context) {
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := share.ProfileQRPNG(s.ProfileBaseURL+"/"+c.Param("id"), size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// statusFor maps the two distinguished source errors to 400; everything
// else is a server-side failure.
func statusFor(err error) int {
	var typeErr *rankcard.InvalidImageTypeError
	var urlErr *rankcard.InvalidImageURLError
	if errors.As(err, &typeErr) || errors.As(err, &urlErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
