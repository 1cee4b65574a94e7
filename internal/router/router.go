package router

import (
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/cache"
	"github.com/MathiasEthan/RaAI/internal/config"
	"github.com/MathiasEthan/RaAI/internal/handlers"
	"github.com/MathiasEthan/RaAI/internal/models"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views/common"
)

// Deps bundles everything the routes need.
type Deps struct {
	Log           *zap.Logger
	Questionnaire *models.Questionnaire
	Store         store.Store
	Client        *api.Client
	Cache         *cache.Cache
	Health        *services.HealthMonitor
	UseDB         bool
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(deps Deps) *gin.Engine {
	log := deps.Log

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	sessionStore := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("raai_session", sessionStore))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(NonceMiddleware())
	router.Use(CSRFProtection())

	router.Use(func(c *gin.Context) {
		isHTMX := c.GetHeader("HX-Request") == "true"
		if !isHTMX {
			nonce, _ := c.Get(CspNonceContextKey)
			csp := fmt.Sprintf(
				"script-src 'self' https://unpkg.com https://cdn.jsdelivr.net 'nonce-%s'; style-src 'self' https://fonts.googleapis.com 'unsafe-inline'; font-src 'self' https://fonts.gstatic.com",
				nonce,
			)
			c.Header("Content-Security-Policy", csp)
		}
		c.Next()
	})

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	router.Static("/assets", "./assets")

	// Handlers
	pagesHandler := handlers.NewPagesHandler(deps.Client, deps.Health)
	authHandler := handlers.NewAuthHandler(log, deps.Client, deps.Health)
	checkinHandler := handlers.NewCheckinHandler(log, deps.Questionnaire, deps.Store, deps.Client, deps.Health, deps.UseDB)
	journalHandler := handlers.NewJournalHandler(log, deps.Store, deps.Client, deps.Health)
	chatHandler := handlers.NewChatHandler(log, deps.Store, deps.Client, deps.Health)
	dashboardHandler := handlers.NewDashboardHandler(log, deps.Store, deps.Client, deps.Health, deps.UseDB)
	onboardingHandler := handlers.NewOnboardingHandler(log, deps.Store, deps.Client, deps.Cache, deps.Health)
	crisisHandler := handlers.NewCrisisHandler(log, deps.Client, deps.Cache, deps.Health)
	communityHandler := handlers.NewCommunityHandler(log, deps.Client, deps.Health)
	ragHandler := handlers.NewRagHandler(log, deps.Client, deps.Health)

	// One bucket for login attempts, a second for routes that fan out
	// to the backend's AI endpoints.
	loginLimiter := ratelimit.RateLimiter(
		ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 5}),
		&ratelimit.Options{ErrorHandler: errorHandler, KeyFunc: keyFunc},
	)
	aiLimiter := ratelimit.RateLimiter(
		ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 20}),
		&ratelimit.Options{ErrorHandler: errorHandler, KeyFunc: keyFunc},
	)

	router.GET("/", pagesHandler.Home)
	router.GET("/learn-more", pagesHandler.LearnMore)
	router.GET("/crisis", crisisHandler.Show)

	router.GET("/nav", func(c *gin.Context) {
		token, _ := c.Get(csrfTokenContextKey)
		csrf, _ := token.(string)
		common.Nav(deps.Client.Token() != "", deps.Health.Ready(), csrf).Render(c.Request.Context(), c.Writer)
	})

	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", loginLimiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authorized := router.Group("/")
	authorized.Use(AuthRequired(log, deps.Client))
	{
		authorized.GET("/onboarding", onboardingHandler.Show)
		authorized.POST("/onboarding", aiLimiter, onboardingHandler.Submit)

		todayRoutes := authorized.Group("/today")
		{
			todayRoutes.GET("", checkinHandler.Start)
			todayRoutes.POST("/next", checkinHandler.Next)
			todayRoutes.POST("/prev", checkinHandler.Prev)
		}

		journalRoutes := authorized.Group("/journal")
		{
			journalRoutes.GET("", journalHandler.Show)
			journalRoutes.POST("/analyze", aiLimiter, journalHandler.Analyze)
			journalRoutes.POST("/save", journalHandler.Save)
		}

		chatRoutes := authorized.Group("/chat")
		{
			chatRoutes.GET("", chatHandler.Show)
			chatRoutes.POST("/send", aiLimiter, chatHandler.Send)
			chatRoutes.POST("/reset", chatHandler.Reset)
		}

		authorized.GET("/dashboard", dashboardHandler.Show)

		communityRoutes := authorized.Group("/community")
		{
			communityRoutes.GET("", communityHandler.Show)
			communityRoutes.POST("/mentors/match", communityHandler.Matches)
			communityRoutes.POST("/mentors/accept", communityHandler.Accept)
			communityRoutes.POST("/rewrite", aiLimiter, communityHandler.Rewrite)
		}

		adminRoutes := authorized.Group("/admin/rag")
		{
			adminRoutes.GET("", ragHandler.Show)
			adminRoutes.POST("/upload", ragHandler.Upload)
		}
	}

	// JSON endpoints for external dashboards and tooling. CORS opens
	// them to configured origins; CSRF doesn't apply to GETs.
	apiRoutes := router.Group("/api")
	apiRoutes.Use(cors.New(cors.Config{
		AllowOrigins:     config.Conf.Server.CORSOrigins,
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	{
		apiRoutes.GET("/mood/week", dashboardHandler.WeekJSON)
		apiRoutes.GET("/mood/series", dashboardHandler.SeriesJSON)
	}

	return router
}
