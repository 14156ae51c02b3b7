package games

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nurture-backend/internal/shared/server/bind"
	"nurture-backend/internal/shared/server/middleware"
	"nurture-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/games", h.catalog)

	sessions := rg.Group("/games/sessions", middleware.RequireUser())
	sessions.POST("", h.record)
	sessions.GET("", h.list)
}

func (h *Handler) catalog(c *gin.Context) {
	respond.OK(c, gin.H{
		"games":         Catalog(),
		"roundSeconds":  RoundSeconds,
		"minDifficulty": MinDifficulty,
		"maxDifficulty": MaxDifficulty,
	})
}

func (h *Handler) record(c *gin.Context) {
	var in RecordInput
	if !bind.JSON(c, &in) {
		return
	}
	session, err := h.Svc.Record(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		if errors.Is(err, ErrInvalidSession) || errors.Is(err, ErrUnknownGame) {
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_game_session", err.Error(), nil)
			return
		}
		respond.Internal(c, "failed to record game session")
		return
	}
	c.Set("gameSessionId", session.ID)
	respond.Created(c, session)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), bind.Limit(c, 20, 100))
	if err != nil {
		respond.Internal(c, "failed to list game sessions")
		return
	}
	respond.OK(c, gin.H{"items": items})
}
