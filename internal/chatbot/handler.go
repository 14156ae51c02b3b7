package chatbot

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
	rg.GET("/chatbot/suggestions", h.suggestions)

	authed := rg.Group("/chatbot", middleware.RequireUser())
	authed.POST("/ask", h.ask)
	authed.GET("/history", h.history)
}

type askRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if !bind.JSON(c, &req) {
		return
	}
	reply, err := h.Svc.Ask(c.Request.Context(), middleware.UserIDFromContext(c), req.Question)
	if err != nil {
		if errors.Is(err, ErrEmptyQuestion) {
			respond.Validation(c, "invalid request", []respond.FieldIssue{{Field: "question", Issue: "required"}})
			return
		}
		respond.Internal(c, "failed to answer question")
		return
	}
	respond.OK(c, reply)
}

func (h *Handler) history(c *gin.Context) {
	limit := bind.Limit(c, 50, 200)
	items, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c), limit)
	if err != nil {
		respond.Internal(c, "failed to load history")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) suggestions(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"greeting":    h.Svc.KB.Greeting,
		"suggestions": h.Svc.Suggestions(),
	})
}
