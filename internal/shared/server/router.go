package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nurture-backend/internal/assessments"
	googleauth "nurture-backend/internal/auth"
	"nurture-backend/internal/chatbot"
	"nurture-backend/internal/dashboard"
	"nurture-backend/internal/forum"
	"nurture-backend/internal/games"
	"nurture-backend/internal/progress"
	"nurture-backend/internal/services/health"
	"nurture-backend/internal/shared/config"
	"nurture-backend/internal/shared/metrics"
	"nurture-backend/internal/shared/server/middleware"
	"nurture-backend/internal/shared/server/respond"
	"nurture-backend/internal/users"
)

const chatbotRateGroup = "CHATBOT"

// PublicPrefixes are reachable without a bearer token.
var PublicPrefixes = []string{
	"/api/v1/health",
	"/api/v1/auth/",
	"/api/v1/assessments/questions",
	"/api/v1/chatbot/suggestions",
	"/api/v1/games",
	"/api/v1/forum/",
	"/metrics",
}

// RouterDeps carries the handlers mounted under /api/v1. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
	AssessmentHandler *assessments.Handler
	ChatbotHandler    *chatbot.Handler
	GameHandler       *games.Handler
	ForumHandler      *forum.Handler
	ProgressHandler   *progress.Handler
	DashboardHandler  *dashboard.Handler
	Health            *health.Service
	RateLimiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(PublicPrefixes...),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.RegisterRoutes(api)
	}
	if deps.ChatbotHandler != nil {
		deps.ChatbotHandler.RegisterRoutes(api)
	}
	if deps.GameHandler != nil {
		deps.GameHandler.RegisterRoutes(api)
	}
	if deps.ForumHandler != nil {
		deps.ForumHandler.RegisterRoutes(api)
	}
	if deps.ProgressHandler != nil {
		deps.ProgressHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	perMin := deps.Config.ChatRateLimitPerMin
	if perMin <= 0 {
		perMin = 30
	}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			chatbotRateGroup: {Rate: float64(perMin) / time.Minute.Seconds(), Burst: perMin},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/chatbot/ask" {
				return chatbotRateGroup
			}
			return ""
		},
		Limiter: deps.RateLimiter,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
