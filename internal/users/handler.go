package users

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docrepo-backend/internal/shared/server/respond"
)

// Handler wires admin user-management routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user-management routes to an admin-guarded group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
	rg.POST("/users", h.create)
	rg.DELETE("/users/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	accounts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	out := make([]UserResponse, 0, len(accounts))
	for _, u := range accounts {
		out = append(out, toResponse(u))
	}
	respond.OK(c, gin.H{"users": out})
}

type createRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password, strings.TrimSpace(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "conflict", "username already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(user))
}

func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid user id", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrLastAdmin):
			respond.Error(c, http.StatusConflict, "last_admin", "cannot delete the last admin user", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete user", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true})
}
