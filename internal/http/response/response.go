package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"propmatch/internal/common"
	"propmatch/internal/http/metrics"
)

var errorCollector *metrics.Collector

// SetErrorCollector wires the metrics collector used to count error
// responses. Called once at startup.
func SetErrorCollector(c *metrics.Collector) {
	errorCollector = c
}

type errorBody struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Error maps the error taxonomy onto HTTP statuses. Internal causes are
// never echoed to the caller.
func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := statusForCode(appErr.Code)
	if status >= http.StatusInternalServerError && errorCollector != nil {
		errorCollector.IncErrors()
	}
	message := appErr.Message
	if appErr.Code == common.CodeInternal {
		message = "internal error"
	}
	JSON(w, status, errorBody{Success: false, Code: string(appErr.Code), Message: message, Fields: appErr.Fields})
}

func statusForCode(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeInvalidState:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
