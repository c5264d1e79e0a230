package identity

import (
	"time"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// LoginRequest contains the credentials for a login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is an issued access/refresh pair
type TokenResponse struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	TokenType             string    `json:"tokenType"`
}

func toTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

// LoginResponse contains the tokens and the logged-in user
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// CreateUserRequest contains the fields for a new user
type CreateUserRequest struct {
	Name     string    `json:"name" binding:"required,max=100"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=6,max=72"`
	RoleID   uuid.UUID `json:"roleId" binding:"required"`
	IsActive *bool     `json:"isActive"`
}

// UpdateUserRequest replaces a user's profile. An empty password keeps
// the current one.
type UpdateUserRequest struct {
	Name     string    `json:"name" binding:"required,max=100"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"omitempty,min=6,max=72"`
	RoleID   uuid.UUID `json:"roleId" binding:"required"`
	IsActive *bool     `json:"isActive"`
}

// UserListFilter holds the query parameters of the user list
type UserListFilter struct {
	Page   int        `form:"page"`
	Limit  int        `form:"limit"`
	Search string     `form:"search"`
	RoleID *uuid.UUID `form:"roleId"`
}

// RoleRef names a user's role
type RoleRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	RoleID      uuid.UUID  `json:"roleId"`
	Role        *RoleRef   `json:"role,omitempty"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToUserResponse converts a user with its loaded role
func ToUserResponse(u *identity.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		RoleID:      u.RoleID,
		Permissions: u.PermissionList(),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Role != nil {
		resp.Role = &RoleRef{ID: u.Role.ID, Name: u.Role.Name}
	}
	if resp.Permissions == nil {
		resp.Permissions = []string{}
	}
	return resp
}

// RoleRequest contains the fields of a role
type RoleRequest struct {
	Name        string   `json:"name" binding:"required,max=50"`
	Description string   `json:"description" binding:"max=255"`
	Permissions []string `json:"permissions"`
}

// RoleResponse is the public view of a role
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToRoleResponse converts a role
func ToRoleResponse(r *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.EffectivePermissions(),
		IsAdmin:     r.IsAdmin(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func pageOf(page, limit int) shared.Filter {
	f := shared.Filter{Page: page, PageSize: limit}
	f.Normalize()
	f.OrderDir = ""
	return f
}
