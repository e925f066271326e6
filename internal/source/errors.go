package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable means the document could not be fetched at the transport
// level (DNS, refused connection, timeout, non-HTTP scheme).
var ErrUnreachable = errors.New("journals source unreachable")

// StatusError non-2xx ответ апстрима
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("journals source returned HTTP %d", e.Code)
}

// Structured error envelope
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}
