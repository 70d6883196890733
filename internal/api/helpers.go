package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/no0bAuntor/vocab-app/internal/errors"
	"github.com/no0bAuntor/vocab-app/internal/logger"
	"github.com/no0bAuntor/vocab-app/internal/progression"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

// phaseParam parses the {phase} URL parameter. Non-numeric values map to
// INVALID_PHASE the same way out-of-range ones do.
func phaseParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "phase")
	phase, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidPhaseError(0)
	}
	if !progression.ValidPhase(phase) {
		return 0, errors.NewInvalidPhaseError(phase)
	}
	return phase, nil
}

// queryInt reads a positive integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
