package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/logger"
)

// handleError centralizes error handling for HTTP responses. Every endpoint
// is a JSON endpoint, so the body is always {"error":{"code","message"}}.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
