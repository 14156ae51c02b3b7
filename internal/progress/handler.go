package progress

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
	g := rg.Group("/progress", middleware.RequireUser())
	g.POST("", h.record)
	g.GET("", h.list)
}

func (h *Handler) record(c *gin.Context) {
	var in RecordInput
	if !bind.JSON(c, &in) {
		return
	}
	entry, err := h.Svc.Record(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidScore), errors.Is(err, ErrInvalidDate):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_progress", err.Error(), nil)
		default:
			respond.Internal(c, "failed to record progress")
		}
		return
	}
	respond.Created(c, entry)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), bind.Limit(c, 30, 365))
	if err != nil {
		respond.Internal(c, "failed to list progress")
		return
	}
	respond.OK(c, gin.H{"items": items})
}
