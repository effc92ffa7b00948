package analysis

import (
	"errors"
	"net/http"
)

// GenericFailureMessage is shown when the service gives no usable error text.
const GenericFailureMessage = "Failed to analyze tasks"

// ErrNoTasks is returned when asked to analyze an empty list.
var ErrNoTasks = errors.New("please add some tasks first")

// ServiceError is a failed analysis: a non-2xx response or a transport failure.
// Message is the service's own error text when it sent one, otherwise GenericFailureMessage.
type ServiceError struct {
	StatusCode int // 0 for transport failures
	Message    string
	Err        error
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Err }

// Temporary reports whether retrying could help: transport failures and 5xx.
func (e *ServiceError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}

// AsServiceError unwraps err into a *ServiceError.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	ok := errors.As(err, &se)
	return se, ok
}
