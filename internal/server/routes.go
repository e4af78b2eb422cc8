package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ragdoc/ragdoc/internal/db"
	"github.com/ragdoc/ragdoc/internal/ingest"
	"github.com/ragdoc/ragdoc/internal/vectordb"
)

type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type queryResponse struct {
	Question  string                   `json:"question"`
	Answer    string                   `json:"answer"`
	Context   []string                 `json:"context"`
	Scores    []float64                `json:"scores,omitempty"`
	Metadata  []vectordb.ChunkMetadata `json:"metadata,omitempty"`
	NumChunks int                      `json:"num_chunks"`
	Error     bool                     `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type documentsResponse struct {
	Documents   []db.DocumentRecord `json:"documents"`
	TotalChunks int                 `json:"total_chunks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy"}
	if !s.pipeline.Available() {
		resp = healthResponse{Status: "degraded", Message: "retrieval pipeline unavailable"}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}
	if s.pipeline == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "retrieval pipeline not configured"})
		return
	}

	answer := s.pipeline.Query(r.Context(), req.Question, req.TopK)

	writeJSON(w, http.StatusOK, queryResponse{
		Question:  answer.Question,
		Answer:    answer.Text,
		Context:   answer.Context,
		Scores:    answer.Scores,
		Metadata:  answer.Metadata,
		NumChunks: answer.NumChunks,
		Error:     answer.Err,
	})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var doc ingest.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(doc.FilePath) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file_path is required"})
		return
	}
	if s.ingestor == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "ingestion pipeline not configured"})
		return
	}

	result, err := s.ingestor.Ingest(r.Context(), doc)
	if err != nil {
		log.Printf("server: ingesting %s: %v", doc.FilePath, err)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catalog not configured"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	records, err := s.catalog.ListIngestions(r.Context(), limit)
	if err != nil {
		log.Printf("server: listing ingestions: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list documents"})
		return
	}
	totalChunks, err := s.catalog.CountChunks(r.Context())
	if err != nil {
		log.Printf("server: counting chunks: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to count chunks"})
		return
	}

	if records == nil {
		records = []db.DocumentRecord{}
	}
	writeJSON(w, http.StatusOK, documentsResponse{Documents: records, TotalChunks: totalChunks})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}
