package middleware

import (
	"net/http"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/logger"
	"github.com/erp/erpcore/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for capability middleware
type PermissionConfig struct {
	// Checker decides capability questions; DefaultCapabilityChecker when nil
	Checker identity.CapabilityChecker
	Logger  *zap.Logger
}

// RequireCapability creates middleware that lets the request through only
// when the authenticated subject holds capability
func RequireCapability(capability identity.Capability) gin.HandlerFunc {
	return RequireAnyCapabilityWithConfig(PermissionConfig{}, capability)
}

// RequireAnyCapability creates middleware that requires at least one of capabilities
func RequireAnyCapability(capabilities ...identity.Capability) gin.HandlerFunc {
	return RequireAnyCapabilityWithConfig(PermissionConfig{}, capabilities...)
}

// RequireAnyCapabilityWithConfig is RequireAnyCapability with a custom checker and logger
func RequireAnyCapabilityWithConfig(cfg PermissionConfig, capabilities ...identity.Capability) gin.HandlerFunc {
	checker := cfg.Checker
	if checker == nil {
		checker = identity.DefaultCapabilityChecker{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				shared.CodeUnauthorized, "Authentication required", c.GetString(logger.RequestIDContextKey)))
			return
		}

		for _, capability := range capabilities {
			if checker.HasCapability(claims, capability) {
				c.Next()
				return
			}
		}

		required := make([]string, len(capabilities))
		for i, capability := range capabilities {
			required[i] = capability.String()
		}
		log.Warn("Capability check failed",
			zap.String("user_id", claims.UserID),
			zap.String("path", c.Request.URL.Path),
			zap.Strings("required_any", required))

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
			shared.CodeForbidden, "Insufficient permissions", c.GetString(logger.RequestIDContextKey)))
	}
}
