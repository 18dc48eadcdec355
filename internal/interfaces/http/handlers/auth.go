// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/user"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// UserService is the part of user.Service the user endpoints use
type UserService interface {
	Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error)
	GetAll(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	Update(ctx context.Context, id string, req *user.UpdateRequest) (*user.User, error)
	Delete(ctx context.Context, id string) error
}

// AuthHandler handles registration and login
type AuthHandler struct {
	userService UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register handles POST /users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, "User registered successfully", created)
}

// Login handles POST /users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	auth, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if apperror.IsInvalidArgument(err) {
			response.Error(c, http.StatusUnauthorized, apperror.MessageOf(err))
			return
		}
		response.FromError(c, err)
		return
	}

	response.OK(c, "Login successful", auth)
}
