package web

// errors.go gives every failed request the same JSON body: the technical
// error is logged server-side, the client gets the mapped user message.

import (
	"net/http"
	"strconv"

	"github.com/Damilavkin/price-list/internal/core"
	"github.com/Damilavkin/price-list/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err with request context and writes the mapped message.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	writeJSON(w, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// writeError writes a client error that has no underlying Go error.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Message: message,
		Code:    "HTTP" + strconv.Itoa(statusCode),
	})
}
