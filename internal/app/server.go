// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"voiceai-web/internal/config"
	"voiceai-web/internal/db"
	"voiceai-web/internal/gateway"
	"voiceai-web/internal/guard"
	authHandler "voiceai-web/internal/handlers/auth"
	dashboardHandler "voiceai-web/internal/handlers/dashboard"
	filesHandler "voiceai-web/internal/handlers/files"
	pagesHandler "voiceai-web/internal/handlers/pages"
	profileHandler "voiceai-web/internal/handlers/profile"
	subscriptionHandler "voiceai-web/internal/handlers/subscription"
	ttsHandler "voiceai-web/internal/handlers/tts"
	"voiceai-web/internal/middleware"
	"voiceai-web/internal/pkg/cookie"
	"voiceai-web/internal/session"
	"voiceai-web/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	http   *http.Server
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine, logger: logger}
}

// Start wires dependencies and begins serving. It blocks until the listener
// fails or Shutdown is called.
func (s *Server) Start() error {
	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       s.cfg.RedisDB,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	s.logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))

	// ----- Session layer -----
	sessions := session.NewStore(redisClient, s.logger, s.cfg.SessionTTL)
	cooldown := session.NewCooldown(redisClient, s.cfg.ResendCooldown)
	codec := cookie.NewCodec(s.cfg.CookieName, s.cfg.CookieSecret, s.cfg.CookieSecure, s.cfg.SessionTTL)
	latch := &guard.Latch{}

	// ----- API gateway -----
	gw := gateway.New(s.cfg.APIBaseURL, s.cfg.APITimeout, sessions, s.logger)

	// ----- Handlers -----
	previews := ttsHandler.NewPreviewRegistry()
	wizard := subscriptionHandler.NewWizardStore(redisClient)

	handlers := &Handlers{
		Pages:        pagesHandler.NewPagesHandler(gw, s.logger),
		Auth:         authHandler.NewAuthHandler(gw, sessions, cooldown, s.logger),
		Dashboard:    dashboardHandler.NewDashboardHandler(gw, s.logger),
		Generate:     ttsHandler.NewGenerateHandler(gw, previews, s.logger),
		Files:        filesHandler.NewFilesHandler(gw, s.logger),
		Subscription: subscriptionHandler.NewSubscriptionHandler(gw, wizard, s.logger),
		Profile:      profileHandler.NewProfileHandler(gw, sessions, s.logger),

		Session: middleware.NewSessionMiddleware(sessions, codec, latch, s.logger),
		Guard:   middleware.NewGuardMiddleware(sessions, latch, s.logger),
	}

	// ----- Engine -----
	s.engine.SetHTMLTemplate(view.Templates())
	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
	)
	SetupRouter(s.engine, handlers)

	s.http = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
