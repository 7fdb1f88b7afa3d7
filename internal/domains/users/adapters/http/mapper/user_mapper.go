package mapper

import (
	"time"

	userdomain "github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	userports "github.com/beandock/coffeeshop-api/internal/domains/users/ports"
)

// RegisterRequest captures the sign-up payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// LoginRequest captures the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest captures a partial profile update; absent fields are
// left unchanged.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// User is the HTTP representation of an account. The password hash never
// leaves the service boundary.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse carries the issued bearer token plus the authenticated user.
type LoginResponse struct {
	Token     string `json:"accessToken"`
	TokenType string `json:"tokenType"`
	User      User   `json:"user"`
}

// ToRegisterInput converts a transport request into the service input.
func ToRegisterInput(req RegisterRequest) userports.RegisterInput {
	return userports.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	}
}

// ToUpdateInput converts a transport patch into the service input.
func ToUpdateInput(req UpdateUserRequest) userports.UpdateUserInput {
	return userports.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: req.IsActive,
	}
}

// FromDomainUser converts a domain user into its transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Address:   user.Address,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// FromDomainUsers converts a slice of domain users.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
