package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"mutt/internal/lineage"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lineage.ErrInvalidScore), errors.Is(err, lineage.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, lineage.ErrSelfRating):
		return http.StatusForbidden
	case errors.Is(err, lineage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, lineage.ErrAlreadyRated), errors.Is(err, lineage.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(lineage.ErrInvalidInput, err)
	}
	return nil
}
