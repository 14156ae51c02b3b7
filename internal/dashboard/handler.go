package dashboard

import (
	"github.com/gin-gonic/gin"

	"nurture-backend/internal/shared/server/middleware"
	"nurture-backend/internal/shared/server/respond"
	"nurture-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", middleware.RequireUser(), h.summary)
}

func (h *Handler) summary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	summary, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		telemetry.Error("dashboard.load_failed", map[string]any{"user_id": userID, "error": err.Error()})
		respond.Internal(c, "failed to load dashboard")
		return
	}
	respond.OK(c, summary)
}
