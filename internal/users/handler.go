package users

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"nurture-backend/internal/shared/server/bind"
	"nurture-backend/internal/shared/server/middleware"
	"nurture-backend/internal/shared/server/respond"
	"nurture-backend/internal/shared/storage/object"
)

const maxAvatarBytes = 2 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signUp)
	rg.POST("/auth/signin", h.signIn)

	me := rg.Group("/me", middleware.RequireUser())
	me.GET("", h.me)
	me.PATCH("", h.update)
	me.PUT("/avatar", h.uploadAvatar)
	me.GET("/avatar", h.avatar)
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req SignUpInput
	if !bind.JSON(c, &req) {
		return
	}
	session, err := h.Svc.SignUp(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
			return
		}
		respond.Internal(c, "failed to create account")
		return
	}
	respond.Created(c, session)
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if !bind.JSON(c, &req) {
		return
	}
	session, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
			return
		}
		respond.Internal(c, "failed to sign in")
		return
	}
	respond.OK(c, session)
}

func (h *Handler) me(c *gin.Context) {
	profile, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.profileError(c, err, "failed to load profile")
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) update(c *gin.Context) {
	var patch ProfilePatch
	if !bind.JSON(c, &patch) {
		return
	}
	profile, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), patch)
	if err != nil {
		h.profileError(c, err, "failed to update profile")
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes+(64<<10))
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Validation(c, "file is required", []respond.FieldIssue{{Field: "file", Issue: "required"}})
		return
	}
	defer file.Close()
	if header.Size > maxAvatarBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "avatar exceeds 2MB", nil)
		return
	}

	profile, err := h.Svc.SetAvatar(c.Request.Context(), middleware.UserIDFromContext(c), header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrUnsupportedAvatar) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "avatar must be an image", nil)
			return
		}
		h.profileError(c, err, "failed to store avatar")
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) avatar(c *gin.Context) {
	rc, err := h.Svc.OpenAvatar(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNoAvatar) || errors.Is(err, object.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "avatar not found", nil)
			return
		}
		h.profileError(c, err, "failed to load avatar")
		return
	}
	defer rc.Close()

	mimeType, body, err := object.Sniff(rc)
	if err != nil {
		respond.Internal(c, "failed to read avatar")
		return
	}
	c.Header("Content-Type", mimeType)
	c.Header("Cache-Control", "private, max-age=300")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *Handler) profileError(c *gin.Context, err error, msg string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	}
	respond.Internal(c, msg)
}
