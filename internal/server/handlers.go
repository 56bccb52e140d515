package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/knotwork/pkg/buildinfo"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/pipeline"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	// Input is BPSEQ text or a dot-bracket structure.
	Input string `json:"input"`

	// Format is "bpseq" or "dotbracket"; empty means detect.
	Format string `json:"format,omitempty"`

	Options pipeline.Options `json:"options"`
}

// ResolversResponse is the body of GET /v1/resolvers.
type ResolversResponse struct {
	Strategies []string          `json:"strategies"`
	Selectors  []string          `json:"selectors"`
	Defaults   pseudoknot.Config `json:"defaults"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Input == "" {
		s.writeError(w, r, kerrors.New(kerrors.ErrCodeInvalidInput, "input is required"))
		return
	}

	seq, err := pipeline.ParseInput([]byte(req.Input), req.Format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), seq, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResolvers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ResolversResponse{
		Strategies: pseudoknot.Strategies,
		Selectors:  pseudoknot.Selectors(),
		Defaults:   pseudoknot.DefaultConfig(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}
