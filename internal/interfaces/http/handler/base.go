// Package handler holds the gin handlers of the REST API. Handlers bind and
// validate requests, call one application service and write the envelope.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/auth"
	"github.com/erp/erpcore/internal/infrastructure/logger"
	"github.com/erp/erpcore/internal/interfaces/http/dto"
	"github.com/erp/erpcore/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(logger.RequestIDContextKey)
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends a paginated 200 response
func Page[T any](c *gin.Context, page *shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleDomainError converts domain errors to HTTP responses. Anything that
// is not a DomainError is logged and reported as a 500 without its text.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		resp := dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, getRequestID(c))
		resp.Error.Details = dto.DetailsOf(domainErr.Details)
		c.JSON(dto.GetHTTPStatus(domainErr.Code), resp)
		return
	}

	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("Unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// bindJSON binds the body and writes the 400 response on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// validateQuery runs the binding tags of a query struct filled by hand
func (h *BaseHandler) validateQuery(c *gin.Context, query any) bool {
	if err := binding.Validator.ValidateStruct(query); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// parseID reads a UUID path parameter
func (h *BaseHandler) parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Invalid path parameter", getRequestID(c),
			[]dto.ValidationDetail{{Field: name, Message: "Invalid UUID format"}}))
		return uuid.Nil, false
	}
	return id, true
}

// queryParams parses optional query values by hand: gin's form binding
// cannot decode uuid.UUID or pointer types reliably.
type queryParams struct {
	c       *gin.Context
	details []dto.ValidationDetail
}

func (h *BaseHandler) query(c *gin.Context) *queryParams {
	return &queryParams{c: c}
}

func (q *queryParams) Int(name string) int {
	raw := strings.TrimSpace(q.c.Query(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.details = append(q.details, dto.ValidationDetail{Field: name, Message: "Must be an integer"})
	}
	return v
}

func (q *queryParams) UUID(name string) *uuid.UUID {
	raw := strings.TrimSpace(q.c.Query(name))
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		q.details = append(q.details, dto.ValidationDetail{Field: name, Message: "Invalid UUID format"})
		return nil
	}
	return &id
}

func (q *queryParams) Bool(name string) *bool {
	raw := strings.TrimSpace(q.c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.details = append(q.details, dto.ValidationDetail{Field: name, Message: "Must be true or false"})
		return nil
	}
	return &v
}

func (q *queryParams) Flag(name string) bool {
	v := q.Bool(name)
	return v != nil && *v
}

func (q *queryParams) String(name string) string {
	return strings.TrimSpace(q.c.Query(name))
}

// Valid writes the 400 response when any value failed to parse
func (q *queryParams) Valid() bool {
	if len(q.details) == 0 {
		return true
	}
	q.c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Invalid query parameters", getRequestID(q.c), q.details))
	return false
}

// currentClaims returns the claims set by the JWT middleware, writing a 401
// when the route was mounted without it
func (h *BaseHandler) currentClaims(c *gin.Context) (*auth.Claims, bool) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Authentication required")
		return nil, false
	}
	return claims, true
}

// currentUserID returns the authenticated user's ID
func (h *BaseHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := h.currentClaims(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		h.Error(c, http.StatusUnauthorized, shared.CodeUnauthorized, "Invalid token")
		return uuid.Nil, false
	}
	return id, true
}
