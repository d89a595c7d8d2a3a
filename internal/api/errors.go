package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MJE43/pf-crosscheck/internal/kernel"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]any
	requestID string
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]any),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// Build creates the final EngineError
func (eb *ErrorBuilder) Build() EngineError {
	var ctx map[string]any
	if len(eb.context) > 0 {
		ctx = eb.context
	}
	return EngineError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   ctx,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler writes error envelopes and logs them.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleKernelError maps a kernel failure onto its HTTP status and envelope.
func (eh *ErrorHandler) HandleKernelError(w http.ResponseWriter, r *http.Request, kernelID string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		eh.write(w, r, http.StatusRequestEntityTooLarge,
			NewError(ErrTypeBodyTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)).
				WithContext("kernel", kernelID))
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		eh.HandleTimeout(w, r, 0)
		return
	}

	kind := kernel.KindOf(err)
	eb := NewError(string(kind), err.Error()).WithContext("kernel", kernelID)

	var ke *kernel.Error
	if errors.As(err, &ke) && ke.Field != "" {
		eb.WithContext("field", ke.Field)
	}

	eh.write(w, r, statusForKind(kind), eb)
}

// HandleValidationError handles request-shape errors outside the kernels.
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	eh.write(w, r, http.StatusBadRequest,
		NewError(ErrTypeMalformedInput, fmt.Sprintf("Validation failed: %s", message)).
			WithContext("field", field))
}

// HandleTimeout answers a request that outlived its deadline.
func (eh *ErrorHandler) HandleTimeout(w http.ResponseWriter, r *http.Request, limit time.Duration) {
	eb := NewError(ErrTypeTimeout, "request timed out")
	if limit > 0 {
		eb.WithContext("timeout", limit.String())
	}
	eh.write(w, r, http.StatusGatewayTimeout, eb)
}

// HandleNotFound answers unknown routes with the standard envelope.
func (eh *ErrorHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	eh.write(w, r, http.StatusNotFound, NewError(ErrTypeNotFound, "route not found"))
}

func statusForKind(kind kernel.Kind) int {
	switch kind {
	case kernel.KindMalformedInput:
		return http.StatusBadRequest
	case kernel.KindInvalidArgument:
		return http.StatusUnprocessableEntity
	case kernel.KindEmptyDeck:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (eh *ErrorHandler) write(w http.ResponseWriter, r *http.Request, status int, eb *ErrorBuilder) {
	engineErr := eb.
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, engineErr, status)
	eh.writeErrorResponse(w, status, engineErr)
}

// logError logs validation failures at warn and everything else at error.
func (eh *ErrorHandler) logError(r *http.Request, engineErr EngineError, status int) {
	category := GetErrorCategory(engineErr.Type)

	fields := []zap.Field{
		zap.String("type", engineErr.Type),
		zap.String("category", string(category)),
		zap.Int("status", status),
		zap.String("request_id", engineErr.RequestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("remote_ip", r.RemoteAddr),
	}
	for key, value := range engineErr.Context {
		// Raw seeds never reach the logs.
		if key == "server_seed" || key == "client_seed" || key == "path" || key == "method" {
			continue
		}
		fields = append(fields, zap.Any(key, value))
	}

	if category == CategoryValidation || status < 500 {
		eh.logger.Warn(engineErr.Message, fields...)
		return
	}
	eh.logger.Error(engineErr.Message, fields...)
}

// writeErrorResponse writes the error response as JSON
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, engineErr EngineError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.Header().Set("X-Error-Type", engineErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(engineErr.Type)))
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(engineErr); err != nil {
		eh.logger.Error("write error response", zap.Error(err))
	}
}

// RecoveryHandler turns panics into internal_error envelopes.
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				eh.logger.Error("panic recovered",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rvr),
					zap.Stack("stack"),
				)
				eh.write(w, r, http.StatusInternalServerError,
					NewError(ErrTypeInternal, "Internal server error").
						WithContext("panic", fmt.Sprintf("%v", rvr)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
