package coffeeshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
)

// AuthAPI wires registration and session endpoints to the user service.
type AuthAPI struct {
	service userports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/v1/auth/register
// Create a new account
func (api *AuthAPI) Register(c *gin.Context) {
	var payload usermapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), usermapper.ToRegisterInput(payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(user))
}

// Post /api/v1/auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload usermapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.LoginResponse{
		Token:     token,
		TokenType: "bearer",
		User:      usermapper.FromDomainUser(user),
	})
}

// Post /api/v1/auth/logout
// Revoke the current session
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), currentToken(c)); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
