package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/rs/zerolog/hlog"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func decodeJSON(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.New("Invalid request body")
	}
	return nil
}

// respondStoreError maps persistence failures onto the API taxonomy:
// not-found → 404, duplicate unique field → 400, anything else → a
// generic 500 that leaks nothing.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case database.IsNotFound(err):
		respondMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, database.ErrEmailTaken):
		respondMessage(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, database.ErrSlugTaken):
		respondMessage(w, http.StatusBadRequest, "Slug already exists")
	case errors.Is(err, database.ErrInsufficientStock):
		respondMessage(w, http.StatusBadRequest, "Insufficient stock")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
