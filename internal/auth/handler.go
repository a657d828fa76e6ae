package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	sharedauth "docrepo-backend/internal/shared/auth"
	"docrepo-backend/internal/shared/server/respond"
	"docrepo-backend/internal/users"
)

// Handler exposes session endpoints backed by the users service.
type Handler struct {
	Users  *users.Service
	Secret string
}

// NewHandler constructs a Handler.
func NewHandler(usersSvc *users.Service, secret string) *Handler {
	return &Handler{Users: usersSvc, Secret: secret}
}

// RegisterRoutes attaches auth routes. These are exempt from the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to authenticate", nil)
		return
	}

	token, err := sharedauth.SignToken(h.Secret, strconv.FormatInt(user.ID, 10), user.Username, user.Role)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}

	respond.OK(c, loginResponse{Token: token, Username: user.Username, Role: user.Role})
}
