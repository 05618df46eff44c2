package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/handler"
	"github.com/stemsi/sodaubai-backend/internal/middleware"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Account *handler.AccountHandler
	Subject *handler.SubjectHandler
	Entry   *handler.EntryHandler
	Stats   *handler.StatsHandler
	Comment *handler.CommentHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// loginLimiter may be nil to disable login rate limiting.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	loginLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := api.Group("/auth")
	{
		login := []gin.HandlerFunc{handlers.Auth.Login}
		if loginLimiter != nil {
			login = append([]gin.HandlerFunc{loginLimiter.Middleware()}, login...)
		}
		auth.POST("/login", login...)

		// Logout only needs a genuine token; it clears whatever session exists.
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
	}

	session := []gin.HandlerFunc{
		middleware.RequireJWT(authService),
		middleware.CheckActiveSession(authService),
	}
	auth.GET("/me", append(session, handlers.Auth.Me)...)
	auth.PUT("/password", append(session, middleware.RequireRole(model.RoleAdmin), handlers.Auth.ChangePassword)...)

	// ─── 2. Logbook Group (current session) ───────────────────────────
	logbook := api.Group("")
	logbook.Use(session...)
	{
		teacherOnly := middleware.RequireRole(model.RoleTeacher)

		logbook.GET("/entries", handlers.Entry.List)
		logbook.POST("/entries", teacherOnly, handlers.Entry.Create)
		logbook.GET("/entries/today", handlers.Entry.Today)
		logbook.GET("/entries/recent-subjects", handlers.Entry.RecentSubjects)
		logbook.GET("/entries/options", handlers.Entry.Options)
		logbook.GET("/entries/export.xlsx", handlers.Entry.Export)
		logbook.GET("/entries/:id", handlers.Entry.Get)
		logbook.PUT("/entries/:id", teacherOnly, handlers.Entry.Update)
		logbook.DELETE("/entries/:id", teacherOnly, handlers.Entry.Delete)

		logbook.POST("/comments/rewrite", handlers.Comment.Rewrite)

		logbook.GET("/stats", handlers.Stats.Report)
		logbook.GET("/stats/export.pdf", handlers.Stats.Export)
	}

	// ─── 3. Admin Group (current session + ADMIN role) ─────────────────
	adminAPI := api.Group("/admin")
	adminAPI.Use(session...)
	adminAPI.Use(middleware.RequireRole(model.RoleAdmin))
	{
		adminAPI.GET("/teachers", handlers.Account.ListTeachers)
		adminAPI.POST("/teachers", handlers.Account.CreateTeacher)
		adminAPI.DELETE("/teachers/:id", handlers.Account.DeleteTeacher)

		adminAPI.GET("/subjects", handlers.Subject.List)
		adminAPI.DELETE("/subjects", handlers.Subject.Delete)
	}

	return router
}
