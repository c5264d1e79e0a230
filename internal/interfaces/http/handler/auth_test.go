package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	appidentity "github.com/erp/erpcore/internal/application/identity"
	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/auth"
	"github.com/erp/erpcore/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	router   *gin.Engine
	userRepo *MockUserRepository
	user     *identity.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	role, err := identity.NewRole("clerk", "Warehouse clerk", []string{identity.CapabilityInventoryRead.String()})
	require.NoError(t, err)
	user, err := identity.NewUser("Ana Ruiz", "ana@example.com", "secret1", role.ID)
	require.NoError(t, err)
	user.Role = role

	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(testJWTConfig())
	authService := appidentity.NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	h := NewAuthHandler(authService)

	router := gin.New()
	router.POST("/auth/login", h.Login)
	protected := router.Group("")
	protected.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:   jwtService,
		TokenChecker: authService,
	}))
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/users/profile", h.Profile)

	return &authFixture{router: router, userRepo: userRepo, user: user}
}

func (f *authFixture) login(t *testing.T) appidentity.LoginResponse {
	t.Helper()
	f.userRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(f.user, nil)
	f.userRepo.On("Save", mock.Anything, f.user).Return(nil)

	w := performRequest(f.router, http.MethodPost, "/auth/login",
		map[string]string{"email": "ana@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp appidentity.LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	return resp
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.login(t)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, f.user.ID, resp.User.ID)
	assert.Equal(t, []string{"almacen:read"}, resp.User.Permissions)
	assert.NotNil(t, f.user.LastLoginAt)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		setup      func(f *authFixture)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing password",
			body:       map[string]string{"email": "ana@example.com"},
			setup:      func(*authFixture) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   shared.CodeValidation,
		},
		{
			name: "wrong password",
			body: map[string]string{"email": "ana@example.com", "password": "nope-nope"},
			setup: func(f *authFixture) {
				f.userRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(f.user, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   shared.CodeUnauthorized,
		},
		{
			name: "unknown email",
			body: map[string]string{"email": "ghost@example.com", "password": "secret1"},
			setup: func(f *authFixture) {
				f.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   shared.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			w := performRequest(f.router, http.MethodPost, "/auth/login", tt.body, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			f.userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_Login_SameMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.userRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(f.user, nil)
	f.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	wrong := decode(t, performRequest(f.router, http.MethodPost, "/auth/login",
		map[string]string{"email": "ana@example.com", "password": "bad-password"}, ""))
	unknown := decode(t, performRequest(f.router, http.MethodPost, "/auth/login",
		map[string]string{"email": "ghost@example.com", "password": "bad-password"}, ""))

	assert.Equal(t, wrong.Error.Message, unknown.Error.Message)
}

func TestAuthHandler_Logout_RevokesAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	resp := f.login(t)
	f.userRepo.On("FindByID", mock.Anything, f.user.ID).Return(f.user, nil)

	w := performRequest(f.router, http.MethodGet, "/users/profile", nil, resp.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(f.router, http.MethodPost, "/auth/logout", nil, resp.AccessToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(f.router, http.MethodGet, "/users/profile", nil, resp.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.Equal(t, shared.CodeUnauthorized, env.Error.Code)
	assert.Equal(t, "Token has been revoked", env.Error.Message)
}

func TestAuthHandler_Logout_WithoutToken(t *testing.T) {
	f := newAuthFixture(t)

	w := performRequest(f.router, http.MethodPost, "/auth/logout", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
