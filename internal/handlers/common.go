package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error codes returned alongside ErrorResponse
const (
	CodeValidation   = "validation_failed"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeBusinessRule = "business_rule"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeInternal     = "internal_error"
)

// Gin context keys set by StudentMiddleware and GraderMiddleware
const (
	studentIDKey = "student_id"
	graderIDKey  = "grader_id"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{"remote_addr", c.ClientIP()}, additionalFields...)
	h.requestLogger(c).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, additionalFields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, additionalFields...)
}

// requestLogger returns the logger stored by utils.ContextLogger, or the
// handler logger with the same request fields when the middleware is absent.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if logger, ok := utils.LoggerFromContext(c); ok {
		return logger
	}
	return h.logger.With(
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"student_id", c.GetString(studentIDKey),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    code,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.AbortWithStatusJSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service and engine errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, CodeBusinessRule, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	switch {
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, CodeForbidden, err.Error(), err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, err.Error(), err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, err.Error(), err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, err.Error(), err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, CodeInternal, "Internal server error", err)
	}
}

// ===== PARAMETERS =====

// studentID returns the caller set by StudentMiddleware
func studentID(c *gin.Context) string {
	return c.GetString(studentIDKey)
}

func graderID(c *gin.Context) string {
	return c.GetString(graderIDKey)
}

func (h *BaseHandler) parseStringParam(c *gin.Context, param string) (string, bool) {
	value := strings.TrimSpace(c.Param(param))
	if value == "" {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid "+param, nil, "ID cannot be empty")
		return "", false
	}
	return value, true
}

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid "+param, err)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return value
}

// ===== MIDDLEWARE =====

// StudentMiddleware requires the student id header set by the gateway.
// Authentication itself happens upstream.
func StudentMiddleware() gin.HandlerFunc {
	return identityMiddleware(utils.StudentIDHeader, studentIDKey)
}

// GraderMiddleware requires the grader id header the gateway sets for
// instructors.
func GraderMiddleware() gin.HandlerFunc {
	return identityMiddleware(utils.GraderIDHeader, graderIDKey)
}

func identityMiddleware(header, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(header))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing " + header + " header",
				Code:    CodeUnauthorized,
			})
			return
		}
		c.Set(key, id)
		c.Next()
	}
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-engine",
	})
}
