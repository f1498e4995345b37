package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"propmatch/internal/app"
	"propmatch/internal/common"
	"propmatch/internal/http/middleware"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts a UUID path segment counting from the end: 1 is the
// last segment, 2 the one before it.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if fromEnd <= 0 || fromEnd > len(segments) {
		return "", common.NewValidationError("invalid path", map[string]string{"id": "id is required"})
	}
	raw := segments[len(segments)-fromEnd]
	parsed, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid path", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func actorFromContext(r *http.Request) (app.Actor, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return app.Actor{}, false
	}
	role, ok := middleware.RoleFromContext(r.Context())
	if !ok {
		return app.Actor{}, false
	}
	return app.Actor{UserID: userID, Role: role}, true
}
