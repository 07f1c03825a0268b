// Package handlers implements the REST API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	appErrors "ideagraph-backend/pkg/errors"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondMessage writes an error-shaped JSON body with a message
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   status >= 400,
		"message": message,
		"code":    status,
	})
}

// respondError maps an application error to an HTTP response. Typed
// errors carry their own status; bus validation failures become 400;
// anything else is a 500 with a generic body.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr := appErrors.GetAppError(err); appErr != nil {
		respondMessage(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	if strings.Contains(err.Error(), "validation failed") {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error("Unhandled error", zap.Error(err))
	respondMessage(w, http.StatusInternalServerError, "Internal server error")
}
