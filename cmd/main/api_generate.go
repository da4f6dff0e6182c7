package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/CTAG07/ngramgen/pkg/ngram"
)

// GenerateAPI serves sentences from one trained, read-only model.
type GenerateAPI struct {
	model        *ngram.Model
	defaultSeed  []string
	maxSentences int
	maxWords     int
	logger       *slog.Logger
}

// NewGenerateAPI creates a new instance of the GenerateAPI.
func NewGenerateAPI(model *ngram.Model, defaultSeed []string, cfg *Config, logger *slog.Logger) *GenerateAPI {
	return &GenerateAPI{
		model:        model,
		defaultSeed:  defaultSeed,
		maxSentences: cfg.Server.MaxSentences,
		maxWords:     cfg.Generation.MaxWords,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (a *GenerateAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", a.handleGenerate)
	mux.HandleFunc("/api/stats", a.handleStats)
	mux.HandleFunc("/api/version", a.handleVersion)
}

type GenerateRequest struct {
	Seed     string  `json:"seed"`
	Count    int     `json:"count"`
	RandSeed *uint64 `json:"rand_seed,omitempty"`
}

type GenerateResponse struct {
	Sentences []string `json:"sentences"`
}

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// handleGenerate samples one or more sentences. An empty seed uses the
// configured default.
func (a *GenerateAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	seed := a.defaultSeed
	if req.Seed != "" {
		seed = seedWords(req.Seed)
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if req.Count < 0 || req.Count > a.maxSentences {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", a.maxSentences))
		return
	}

	opts := []ngram.GenerateOption{ngram.WithMaxWords(a.maxWords)}
	if req.RandSeed != nil {
		opts = append(opts, ngram.WithSource(ngram.NewSource(*req.RandSeed)))
	}

	resp := GenerateResponse{Sentences: make([]string, 0, req.Count)}
	for i := 0; i < req.Count; i++ {
		sentence, err := a.model.Generate(seed, opts...)
		if errors.Is(err, ngram.ErrSeedTooShort) {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("seed must have at least %d words", a.model.Order()))
			return
		}
		if err != nil {
			a.logger.Error("Failed to generate sentence", "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Generation failed: %v", err))
			return
		}
		resp.Sentences = append(resp.Sentences, sentence)
	}

	a.logger.Debug("Served generation request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.Int("count", req.Count),
	)
	respondWithJSON(w, http.StatusOK, resp)
}

// handleStats returns statistics for the served model.
func (a *GenerateAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, a.model.Stats())
}

// handleVersion returns the application's build information.
func (a *GenerateAPI) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}
