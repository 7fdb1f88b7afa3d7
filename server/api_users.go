package coffeeshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/beandock/coffeeshop-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
	apierrors "github.com/beandock/coffeeshop-api/internal/shared/errors"
)

// UserAPI wires profile and administrative user endpoints to the user service.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Get /api/v1/users/me
// Current user's profile
func (api *UserAPI) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Put /api/v1/users/me
// Update current user's profile
func (api *UserAPI) UpdateCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload usermapper.UpdateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	// Users cannot deactivate themselves through the profile endpoint.
	payload.IsActive = nil
	updated, err := api.service.UpdateUser(c.Request.Context(), user.ID, usermapper.ToUpdateInput(payload))
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(updated))
}

// Get /api/v1/users
// List accounts (admin)
func (api *UserAPI) ListUsers(c *gin.Context) {
	offset, ok := parseQueryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit", 0)
	if !ok {
		return
	}
	users, err := api.service.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUsers(users))
}

// Get /api/v1/users/:userId
// Fetch an account by id (admin)
func (api *UserAPI) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Delete /api/v1/users/:userId
// Remove an account (admin)
func (api *UserAPI) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := api.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
