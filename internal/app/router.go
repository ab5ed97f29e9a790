// internal/app/router.go
package app

import (
	authHandler "voiceai-web/internal/handlers/auth"
	dashboardHandler "voiceai-web/internal/handlers/dashboard"
	filesHandler "voiceai-web/internal/handlers/files"
	pagesHandler "voiceai-web/internal/handlers/pages"
	profileHandler "voiceai-web/internal/handlers/profile"
	subscriptionHandler "voiceai-web/internal/handlers/subscription"
	ttsHandler "voiceai-web/internal/handlers/tts"
	"voiceai-web/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Pages        *pagesHandler.PagesHandler
	Auth         *authHandler.AuthHandler
	Dashboard    *dashboardHandler.DashboardHandler
	Generate     *ttsHandler.GenerateHandler
	Files        *filesHandler.FilesHandler
	Subscription *subscriptionHandler.SubscriptionHandler
	Profile      *profileHandler.ProfileHandler

	Session *middleware.SessionMiddleware
	Guard   *middleware.GuardMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Public Pages ====================
	// The home page reads the session when one exists but never requires it.
	public := r.Group("")
	public.Use(h.Session.Load())
	{
		public.GET("/", h.Pages.Home)
		public.GET("/features", h.Pages.Features)
		public.GET("/pricing", h.Pages.Pricing)
		public.GET("/about", h.Pages.About)

		public.POST("/logout", h.Auth.Logout)
	}

	// ==================== Auth Pages ====================
	// Signed-in users are bounced to the dashboard before these render.
	authPages := r.Group("")
	authPages.Use(h.Session.Load(), h.Guard.AuthPages())
	{
		authPages.GET("/login", h.Auth.ShowLogin)
		authPages.POST("/login", h.Auth.Login)
		authPages.GET("/register", h.Auth.ShowRegister)
		authPages.POST("/register", h.Auth.Register)
		authPages.GET("/verify-email", h.Auth.ShowVerifyEmail)
		authPages.POST("/verify-email", h.Auth.VerifyEmail)
		authPages.POST("/verify-email/resend", h.Auth.ResendOTP)
		authPages.GET("/forgot-password", h.Auth.ShowForgotPassword)
		authPages.POST("/forgot-password", h.Auth.ForgotPassword)
		authPages.GET("/reset-password", h.Auth.ShowResetPassword)
		authPages.POST("/reset-password", h.Auth.ResetPassword)
	}

	// ==================== Dashboard ====================
	dashboard := r.Group("/dashboard")
	dashboard.Use(h.Session.Load(), h.Guard.Dashboard())
	{
		dashboard.GET("", h.Dashboard.Overview)

		dashboard.GET("/generate", h.Generate.ShowGenerate)
		dashboard.POST("/generate", h.Generate.Generate)
		dashboard.POST("/generate/preview", h.Generate.Preview)
		dashboard.GET("/generate/preview/audio", h.Generate.PreviewAudio)

		dashboard.GET("/files", h.Files.List)
		dashboard.POST("/files/:id/delete", h.Files.Delete)
		dashboard.GET("/files/:id/download", h.Files.Download)

		dashboard.GET("/subscription", h.Subscription.Show)
		dashboard.POST("/subscription/select", h.Subscription.Select)
		dashboard.POST("/subscription/proof", h.Subscription.UploadProof)
		dashboard.POST("/subscription/back", h.Subscription.Back)
		dashboard.POST("/subscription/confirm", h.Subscription.Confirm)

		dashboard.GET("/profile", h.Profile.Show)
		dashboard.POST("/profile", h.Profile.Update)
		dashboard.POST("/profile/password", h.Profile.ChangePassword)
		dashboard.POST("/profile/delete", h.Profile.Delete)
	}
}
