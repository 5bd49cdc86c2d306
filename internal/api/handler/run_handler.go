// Package handler implements the status API's HTTP handlers: starting a
// run, listing run history, and fetching per-run status. Grounded on the
// teacher's internal/api/handler/pipeline_handler.go (decode request body,
// validate, kick off work asynchronously with a cancellable context,
// persist via a store package, write JSON responses), narrowed to the
// generation engine's run lifecycle instead of full pipeline CRUD.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"go-corrgen/internal/config"
	"go-corrgen/internal/model"
	"go-corrgen/internal/orchestrator"
	"go-corrgen/internal/runlog"
	"go-corrgen/internal/wireformat"

	"github.com/google/uuid"
)

// Server holds the dependencies the run handlers need: the run-history
// store and the set of runs currently executing in this process.
type Server struct {
	Log *runlog.Store

	mu   sync.Mutex
	runs map[string]*runState
}

type runState struct {
	cancel  context.CancelFunc
	summary orchestrator.Summary
	err     error
	done    bool
}

func NewServer(log *runlog.Store) *Server {
	return &Server{Log: log, runs: make(map[string]*runState)}
}

type startRunRequest struct {
	GeneratorConfigPath string `json:"generator_config_path"`
	BrokerConfigPath    string `json:"broker_config_path"`
	DryRun              bool   `json:"dry_run"`
	Format              string `json:"format"`
	Seed                uint64 `json:"seed"`
	CleanTopics         bool   `json:"clean_topics"`
}

type startRunResponse struct {
	RunID string `json:"run_id"`
}

// StartRun launches a new Generate run asynchronously and returns its ID
// immediately; poll RunStatus for completion.
// @Summary Start a generation run
// @Accept json
// @Produce json
// @Param request body startRunRequest true "Run configuration"
// @Success 202 {object} startRunResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/runs [post]
func (s *Server) StartRun(w http.ResponseWriter, r *http.Request) {
	var req startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	genCfg, err := config.LoadGenerator(req.GeneratorConfigPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := orchestrator.Validate(genCfg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var brokerCfg model.BrokerConfig
	if req.BrokerConfigPath != "" {
		brokerCfg, err = config.LoadBroker(req.BrokerConfigPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	format := wireformat.FormatJSON
	if req.Format == string(wireformat.FormatSchemaFramed) {
		format = wireformat.FormatSchemaFramed
	}

	runID := uuid.New().String()
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.runs[runID] = &runState{cancel: cancel}
	s.mu.Unlock()

	go func() {
		defer cancel()
		summary, err := orchestrator.Generate(ctx, genCfg, brokerCfg, orchestrator.Options{
			DryRun:      req.DryRun,
			Format:      format,
			Seed:        req.Seed,
			Log:         s.Log,
			CleanTopics: req.CleanTopics,
		})

		s.mu.Lock()
		s.runs[runID].summary = summary
		s.runs[runID].err = err
		s.runs[runID].done = true
		s.mu.Unlock()
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(startRunResponse{RunID: runID})
}

// RunStatus reports a run's current summary, or 404 if unknown.
// @Summary Get a run's status
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "done, summary (orchestrator.Summary), and error if any"
// @Failure 404 {object} map[string]string
// @Router /api/v1/runs/{id} [get]
func (s *Server) RunStatus(w http.ResponseWriter, r *http.Request, runID string) {
	s.mu.Lock()
	state, ok := s.runs[runID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown run", http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{
		"done":    state.done,
		"summary": state.summary,
	}
	if state.err != nil {
		resp["error"] = state.err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RunHistory lists the most recently started runs from persisted history,
// newest first, including runs still in progress.
// @Summary List run history
// @Produce json
// @Success 200 {array} runlog.Run
// @Router /api/v1/runs/history [get]
func (s *Server) RunHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Log.Recent(50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// CancelRun signals a running generation to stop and proceed to Draining.
// @Summary Cancel a running generation
// @Param id path string true "Run ID"
// @Success 202 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/runs/{id}/cancel [post]
func (s *Server) CancelRun(w http.ResponseWriter, r *http.Request, runID string) {
	s.mu.Lock()
	state, ok := s.runs[runID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown run", http.StatusNotFound)
		return
	}
	state.cancel()
	w.WriteHeader(http.StatusAccepted)
}
