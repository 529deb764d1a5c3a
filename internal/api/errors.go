package api

import (
	"errors"
	"fmt"
)

// Session-level failures are sentinels so callers can match them with
// errors.Is and skip their own duplicate notice: the gateway already decided
// what these mean.
var (
	// ErrSessionExpired signals a 401 whose error detail marks the credential
	// as expired. By the time a caller sees it the persisted session has
	// already been cleared.
	ErrSessionExpired = errors.New("sesión expirada")

	// ErrUnauthorized signals any other 401.
	ErrUnauthorized = errors.New("no autorizado")
)

// RequestFailedError covers every other non-success outcome, including
// network-level failures (Status 0).
type RequestFailedError struct {
	Method string
	Path   string
	Status int
	Detail string
	Err    error
}

func (e *RequestFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: estado %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: estado %d", e.Method, e.Path, e.Status)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// Notice maps a gateway error to the single user-facing message for it.
// Session errors carry fixed texts; anything else falls back to the
// action-named generic message the caller provides. Callers show exactly one
// notice per failed action, always through this mapping.
func Notice(generic string, err error) string {
	switch {
	case errors.Is(err, ErrSessionExpired):
		return "Sesión expirada, inicia sesión de nuevo."
	case errors.Is(err, ErrUnauthorized):
		return "No autorizado."
	default:
		return generic
	}
}
