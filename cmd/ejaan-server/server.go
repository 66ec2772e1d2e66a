package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/cognicore/ejaan/pkg/ejaan"
	"github.com/cognicore/ejaan/pkg/ejaan/internalerr"
)

const maxBodyBytes = 10 << 20

type server struct {
	engine *ejaan.Engine
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/check", s.handleCheck)
	mux.HandleFunc("POST /api/v1/custom-word", s.handleAddWord)
	mux.HandleFunc("DELETE /api/v1/custom-word/{word}", s.handleRemoveWord)
	mux.HandleFunc("GET /api/v1/reports/{id}", s.handleGetReport)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Source == "" {
		req.Source = "api"
	}

	rep, err := s.engine.Report(r.Context(), req.Source, req.Text)
	if err != nil {
		log.Printf("check failed: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Word == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.engine.AddWord(r.Context(), req.Word); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.engine.RemoveWord(r.Context(), word); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.engine.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.engine.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"words":  stats.Words,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, internalerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, internalerr.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
