// internal/handlers/pages/pages_handler.go

// Package pages serves the public marketing pages. They are reachable with or
// without a session; the only session-aware bit is the home page's CTA.
package pages

import (
	"net/http"

	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PagesHandler struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewPagesHandler(gw *gateway.Client, logger *zap.Logger) *PagesHandler {
	return &PagesHandler{gw: gw, logger: logger}
}

func (h *PagesHandler) Home(c *gin.Context) {
	authenticated := false
	if sess := middleware.CurrentSession(c); sess != nil && sess.User != nil {
		authenticated = true
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"Authenticated": authenticated})
}

// Pricing lists the plans straight from the API; no session required.
func (h *PagesHandler) Pricing(c *gin.Context) {
	plans, err := h.gw.Plans(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.logger.Warn("list plans failed", zap.Error(err))
		c.HTML(http.StatusOK, "pricing.html", gin.H{
			"Error": "Could not load plans right now. Please try again later.",
		})
		return
	}
	c.HTML(http.StatusOK, "pricing.html", gin.H{"Plans": plans})
}

func (h *PagesHandler) Features(c *gin.Context) {
	c.HTML(http.StatusOK, "features.html", nil)
}

func (h *PagesHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", nil)
}
