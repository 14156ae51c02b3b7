package assessments

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
	rg.GET("/assessments/questions", h.questions)

	authed := rg.Group("/assessments", middleware.RequireUser())
	authed.POST("", h.submit)
	authed.GET("", h.list)
	authed.GET("/:assessmentId", h.get)
}

type submitRequest struct {
	Answers []*int `json:"answers" validate:"required"`
}

func (h *Handler) questions(c *gin.Context) {
	respond.OK(c, gin.H{
		"version":   h.Svc.Bank.Version,
		"questions": h.Svc.Bank.Questions,
	})
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if !bind.JSON(c, &req) {
		return
	}

	childID := middleware.UserIDFromContext(c)
	assessment, err := h.Svc.Submit(c.Request.Context(), childID, req.Answers)
	if err != nil {
		var persistErr *PersistenceError
		switch {
		case errors.As(err, &persistErr):
			respond.Error(c, http.StatusBadGateway, "persistence_failed", "assessment scored but could not be saved", gin.H{
				"result": persistErr.Result,
			})
		case errors.Is(err, ErrIncompleteAssessment):
			respond.Error(c, http.StatusUnprocessableEntity, "incomplete_assessment", "every question must be answered", gin.H{
				"unanswered": Unanswered(h.Svc.Bank, req.Answers),
			})
		case errors.Is(err, ErrInvalidAnswer):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_answer", err.Error(), nil)
		default:
			respond.Internal(c, "failed to submit assessment")
		}
		return
	}

	c.Set("assessmentId", assessment.ID)
	respond.Created(c, assessment)
}

func (h *Handler) list(c *gin.Context) {
	limit := bind.Limit(c, 20, 100)
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit)
	if err != nil {
		respond.Internal(c, "failed to list assessments")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	assessmentID := c.Param("assessmentId")
	c.Set("assessmentId", assessmentID)
	a, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), assessmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "assessment not found", nil)
			return
		}
		respond.Internal(c, "failed to load assessment")
		return
	}
	respond.OK(c, a)
}
