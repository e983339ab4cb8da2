package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// LogLevel represents different log levels for service operations
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

type requestIDKey struct{}

// WithRequestID stores the request id picked up by operation logs.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, studentID, resourceID, resourceType string, duration time.Duration, err error) {
	logLevel, status := classify(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("student_id", studentID),
		slog.String("resource_id", resourceID),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErr ValidationErrors
		var businessErr *BusinessRuleError
		switch {
		case errors.As(err, &validationErr):
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErr)))
		case errors.As(err, &businessErr):
			attrs = append(attrs, slog.String("business_rule", businessErr.Rule))
		}
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	// Add caller information for errors
	if logLevel == LogLevelError {
		if pc, file, line, ok := runtime.Caller(1); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	message := fmt.Sprintf("%s operation %s", operation, status)

	switch logLevel {
	case LogLevelDebug:
		if l.config.EnableDebug {
			l.logger.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
		}
	case LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, message, attrs...)
	case LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, message, attrs...)
	case LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, message, attrs...)
	}
}

// LogEffectFailure records a side effect that failed without failing the
// operation that requested it.
func (l *ServiceLogger) LogEffectFailure(ctx context.Context, effect, sessionID string, err error, args ...any) {
	allArgs := append([]any{"effect", effect, "session_id", sessionID, "error", err}, args...)
	l.logger.WarnContext(ctx, "Side effect failed", allArgs...)
}

// LogRecovery records a recovered panic.
func (l *ServiceLogger) LogRecovery(ctx context.Context, operation string, recovered interface{}, stack []byte) {
	l.logger.ErrorContext(ctx, "Recovered from panic",
		"operation", operation,
		"panic", fmt.Sprint(recovered),
		"stack", string(stack))
}

// ===== HELPERS =====

// ContextualLogger binds an operation to its start time.
type ContextualLogger struct {
	parent    *ServiceLogger
	ctx       context.Context
	operation string
	studentID string
	start     time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, studentID string) *ContextualLogger {
	return &ContextualLogger{
		parent:    l,
		ctx:       ctx,
		operation: operation,
		studentID: studentID,
		start:     time.Now(),
	}
}

func (cl *ContextualLogger) LogResult(resourceID, resourceType string, err error) {
	cl.parent.LogOperation(cl.ctx, cl.operation, cl.studentID, resourceID, resourceType, time.Since(cl.start), err)
}

func classify(err error) (LogLevel, string) {
	switch {
	case err == nil:
		return LogLevelInfo, "success"
	case IsValidation(err) || IsBusinessRule(err):
		return LogLevelWarn, "validation_error"
	case IsConflict(err):
		return LogLevelWarn, "conflict"
	case IsNotFound(err):
		return LogLevelInfo, "not_found"
	default:
		return LogLevelError, "error"
	}
}
