package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mutt/internal/lineage"
	"mutt/internal/store"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listMutts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	mutts, err := s.svc.ListMutts(r.Context(), store.ListFilter{
		Bloodline: q.Get("bloodline"),
		Breeder:   q.Get("breeder"),
		Limit:     limit,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutts)
}

func (s *Server) getMutt(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.svc.GetMutt(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) getLineage(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Lineage(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) getAncestors(w http.ResponseWriter, r *http.Request) {
	if s.ancestry == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "graph projection is not configured"})
		return
	}
	id, err := tokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	depth, err := intParam(r.URL.Query().Get("depth"), 3)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ancestors, err := s.ancestry.GetAncestors(r.Context(), id, depth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ancestors)
}

func (s *Server) hatch(w http.ResponseWriter, r *http.Request) {
	var in lineage.HatchInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.svc.Hatch(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) breed(w http.ResponseWriter, r *http.Request) {
	var in lineage.BreedInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.svc.Breed(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) rate(w http.ResponseWriter, r *http.Request) {
	var in lineage.RateInput
	if err := decodeBody(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.svc.Rate(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	id, err := tokenID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	decision, err := s.svc.Evaluate(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), s.limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	houses, err := s.svc.Leaderboard(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, houses)
}

func (s *Server) syncLeaderboard(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.SyncSacred(r.Context(), s.limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func tokenID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid token id %q", lineage.ErrInvalidInput, raw)
	}
	return id, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid number %q", lineage.ErrInvalidInput, raw)
	}
	return n, nil
}
