package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"cryptoboard/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// ProviderRequestError is a transport failure or non-success response
// from the market-data provider.
type ProviderRequestError struct {
	DashboardError
	StatusCode int // 0 when no response was received
}

// ProviderRejectedParametersError is the provider refusing a symbol or
// granularity. Message carries the provider's text verbatim.
type ProviderRejectedParametersError struct {
	DashboardError
	StatusCode int
}

type ConfigurationError struct{ DashboardError }
type DatabaseError struct{ DashboardError }

// -----------------------------------------------------------------------------

func NewProviderRequestError(message string, status int, cause error) *ProviderRequestError {
	return &ProviderRequestError{
		DashboardError: DashboardError{Message: message, Cause: cause},
		StatusCode:     status,
	}
}

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{DashboardError{Message: message, Cause: cause}}
}

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{DashboardError{Message: message, Cause: cause}}
}

func NewProviderRejectedParametersError(message string, status int) *ProviderRejectedParametersError {
	return &ProviderRejectedParametersError{
		DashboardError: DashboardError{Message: message},
		StatusCode:     status,
	}
}

// -----------------------------------------------------------------------------

// HTTPStatus maps a render error onto the status the dashboard answers with.
func HTTPStatus(err error) int {
	var rejected *ProviderRejectedParametersError
	var request *ProviderRequestError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &rejected):
		return http.StatusBadRequest
	case errors.As(err, &request):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	mu         sync.Mutex
	errorCount int
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = 0
	e.mu.Unlock()
}

func (e *ErrorHandler) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorCount
}

// -----------------------------------------------------------------------------

// Handle logs err with context and counts it. Nil errors are ignored.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.errorCount++
	e.mu.Unlock()
	e.Logger.Error("Error in %s: %v", context, err)
}
