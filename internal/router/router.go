package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/config"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/handler"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/metrics"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/middleware"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

// publicListingMaxAge is how long clients may cache the public school listing.
const publicListingMaxAge = 60

// Handlers groups all handler instances for route setup.
type Handlers struct {
	School    *handler.SchoolHandler
	Roster    *handler.RosterHandler
	Content   *handler.ContentHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokens middleware.TokenValidator,
	handlers *Handlers,
	cfg *config.Config,
	limiter middleware.Limiter,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// ─── Client IP ─────────────────────────────────────────────────────
	// Rate limiting keys on ClientIP, so X-Forwarded-For is only believed
	// from configured proxies. By default the peer address is used.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).
			Msg("Invalid TRUSTED_PROXIES, trusting no proxy")
		_ = router.SetTrustedProxies(nil)
	}

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(
		response.RequestIDMiddleware(),
		middleware.AccessLog(log),
		gin.Recovery(),
	)

	// promhttp negotiates its own encoding.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPaths("/metrics"),
	}))

	// ─── Operational ───────────────────────────────────────────────────
	router.GET("/health", handlers.System.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── 1. Public ─────────────────────────────────────────────────────
	router.GET("/listar", middleware.CacheControl(publicListingMaxAge), handlers.School.List)

	// ─── 2. Auth (Public, Rate Limited) ────────────────────────────────
	authLimited := router.Group("/")
	authLimited.Use(middleware.RateLimit(limiter, log))
	{
		authLimited.POST("/cadastro", handlers.School.Register)
		authLimited.POST("/login", handlers.School.Login)
	}

	// ─── 3. School (JWT + Capabilities) ────────────────────────────────
	school := router.Group("/")
	school.Use(
		middleware.RequireRole(tokens, model.RoleSchool),
		middleware.NoStore(),
	)
	{
		school.POST("/alterar-senha",
			middleware.RequireCapability(model.CapabilityManageAccount),
			handlers.School.ChangePassword,
		)

		// Roster
		school.GET("/series",
			middleware.RequireCapability(model.CapabilityReadRoster),
			handlers.Roster.ListClasses,
		)
		school.GET("/alunos",
			middleware.RequireCapability(model.CapabilityReadRoster),
			handlers.Roster.ListStudents,
		)
		school.GET("/alunos/detalhado",
			middleware.RequireCapability(model.CapabilityReadRoster),
			handlers.Roster.ListStudentsDetailed,
		)

		// Content
		school.POST("/quiz/criar",
			middleware.RequireCapability(model.CapabilityAssignContent),
			handlers.Content.CreateQuiz,
		)
		school.POST("/tarefa/atribuir",
			middleware.RequireCapability(model.CapabilityAssignContent),
			handlers.Content.AssignTask,
		)
		school.POST("/mensagem/enviar",
			middleware.RequireCapability(model.CapabilityAssignContent),
			handlers.Content.SendMessage,
		)

		// Dashboard and reports
		school.GET("/dashboard/estatisticas",
			middleware.RequireCapability(model.CapabilityReadReports),
			handlers.Dashboard.GetStats,
		)
		school.GET("/dashboard/atividades-recentes",
			middleware.RequireCapability(model.CapabilityReadReports),
			handlers.Dashboard.GetRecentActivities,
		)
		school.GET("/relatorios",
			middleware.RequireCapability(model.CapabilityReadReports),
			handlers.Report.GetReport,
		)
		school.GET("/relatorios/exportar",
			middleware.RequireCapability(model.CapabilityReadReports),
			handlers.Report.Export,
		)
	}

	return router
}
