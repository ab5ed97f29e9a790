// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"errors"
	"net/http"
	"sync"

	"voiceai-web/internal/domain/subscription"
	"voiceai-web/internal/domain/tts"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/xerrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewDashboardHandler(gw *gateway.Client, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{gw: gw, logger: logger}
}

// Overview renders the dashboard landing page. Usage, subscription, and the
// recent file list are independent reads issued concurrently; each fills its
// own slot whenever it completes, and a failure in one never blanks the
// others.
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	sess := middleware.CurrentSession(c)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		usage   *tts.UsageStats
		sub     *subscription.Subscription
		files   []tts.VoiceFile
		authErr error
	)

	fetch := func(f func() error, what string) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				if errors.Is(err, xerrors.ErrUnauthorized) {
					mu.Lock()
					authErr = err
					mu.Unlock()
					return
				}
				h.logger.Warn("dashboard fetch failed",
					zap.String("what", what),
					zap.Error(err),
				)
			}
		}()
	}

	fetch(func() error {
		var err error
		usage, err = h.gw.Usage(ctx, sid)
		return err
	}, "usage")

	fetch(func() error {
		var err error
		sub, err = h.gw.Subscription(ctx, sid)
		return err
	}, "subscription")

	fetch(func() error {
		page, err := h.gw.VoiceFiles(ctx, sid, 1, 5)
		if err != nil {
			return err
		}
		files = page.VoiceFiles
		return nil
	}, "voice files")

	wg.Wait()

	if authErr != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":         sess.User,
		"Usage":        usage,
		"Subscription": sub,
		"Files":        files,
	})
}
