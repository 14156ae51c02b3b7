package forum

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
	rg.GET("/forum/categories", h.categories)
	rg.GET("/forum/posts", h.list)
	rg.GET("/forum/posts/:postId", h.get)

	authed := rg.Group("/forum/posts", middleware.RequireUser())
	authed.POST("", h.create)
	authed.POST("/:postId/upvote", h.upvote)
}

func (h *Handler) categories(c *gin.Context) {
	respond.OK(c, gin.H{"categories": Categories()})
}

func (h *Handler) list(c *gin.Context) {
	category, err := ParseCategory(c.Query("category"))
	if err != nil {
		respond.Validation(c, "invalid category", []respond.FieldIssue{{Field: "category", Issue: "oneof"}})
		return
	}
	posts, err := h.Svc.List(c.Request.Context(), category, bind.Limit(c, 50, 200))
	if err != nil {
		respond.Internal(c, "failed to list posts")
		return
	}
	viewer := middleware.UserIDFromContext(c)
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, p.View(viewer))
	}
	respond.OK(c, gin.H{"items": views})
}

func (h *Handler) get(c *gin.Context) {
	postID := c.Param("postId")
	c.Set("postId", postID)
	post, err := h.Svc.Get(c.Request.Context(), postID)
	if err != nil {
		h.postError(c, err, "failed to load post")
		return
	}
	respond.OK(c, post.View(middleware.UserIDFromContext(c)))
}

func (h *Handler) create(c *gin.Context) {
	var in NewPost
	if !bind.JSON(c, &in) {
		return
	}
	userID := middleware.UserIDFromContext(c)
	post, err := h.Svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			respond.Validation(c, "invalid category", []respond.FieldIssue{{Field: "category", Issue: "oneof"}})
			return
		}
		respond.Internal(c, "failed to create post")
		return
	}
	c.Set("postId", post.ID)
	respond.Created(c, post.View(userID))
}

func (h *Handler) upvote(c *gin.Context) {
	postID := c.Param("postId")
	c.Set("postId", postID)
	upvotes, added, err := h.Svc.Upvote(c.Request.Context(), postID, middleware.UserIDFromContext(c))
	if err != nil {
		h.postError(c, err, "failed to upvote post")
		return
	}
	respond.OK(c, gin.H{"id": postID, "upvotes": upvotes, "added": added})
}

func (h *Handler) postError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "post not found", nil)
		return
	}
	respond.Internal(c, msg)
}
