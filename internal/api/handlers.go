package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/interfaces"
	"github.com/txlens/base-tx-analyzer/pkg/registry"
	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// Handlers contains the HTTP handlers for the analysis API
type Handlers struct {
	analyzer     interfaces.Analyzer
	registry     *registry.Registry
	stream       *StreamServer
	maxBatchSize int
	logger       *zap.Logger
	startTime    time.Time
}

// NewHandlers creates the handler set
func NewHandlers(
	analyzer interfaces.Analyzer,
	reg *registry.Registry,
	stream *StreamServer,
	maxBatchSize int,
	logger *zap.Logger,
) *Handlers {
	if maxBatchSize <= 0 {
		maxBatchSize = 100
	}
	return &Handlers{
		analyzer:     analyzer,
		registry:     reg,
		stream:       stream,
		maxBatchSize: maxBatchSize,
		logger:       logger,
		startTime:    time.Now(),
	}
}

// healthResponse is the body of the health endpoint
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Health reports liveness
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startTime).String(),
	})
}

// GetTransactionAnalysis analyzes a single transaction hash
func (h *Handlers) GetTransactionAnalysis(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["hash"]
	if !isTxHash(hash) {
		writeError(w, http.StatusBadRequest, "invalid transaction hash")
		return
	}

	analysis, err := h.analyzer.AnalyzeTransaction(r.Context(), hash)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		h.logger.Error("analysis failed", zap.String("hash", hash), zap.Error(err))
		writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// batchRequest is the body of the batch analysis endpoint
type batchRequest struct {
	Hashes []string `json:"hashes"`
}

// batchResponse mirrors interfaces.BatchResult with a JSON-friendly error
type batchResponse struct {
	Results []batchResultJSON `json:"results"`
}

type batchResultJSON struct {
	Hash     string                     `json:"hash"`
	Analysis *types.TransactionAnalysis `json:"analysis,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

// PostBatchAnalysis analyzes a list of hashes; failed hashes report their
// error in place without affecting the others
func (h *Handlers) PostBatchAnalysis(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Hashes) == 0 {
		writeError(w, http.StatusBadRequest, "hashes is required")
		return
	}
	if len(req.Hashes) > h.maxBatchSize {
		writeError(w, http.StatusBadRequest, "batch size exceeds limit")
		return
	}
	for _, hash := range req.Hashes {
		if !isTxHash(hash) {
			writeError(w, http.StatusBadRequest, "invalid transaction hash: "+hash)
			return
		}
	}

	results := h.analyzer.AnalyzeBatch(r.Context(), req.Hashes)

	resp := batchResponse{Results: make([]batchResultJSON, 0, len(results))}
	for _, res := range results {
		out := batchResultJSON{Hash: res.Hash, Analysis: res.Analysis}
		if res.Err != nil {
			out.Error = res.Err.Error()
		} else if h.stream != nil {
			h.stream.Broadcast(res.Analysis)
		}
		resp.Results = append(resp.Results, out)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetRegistryEntries lists the registered contracts of one category
func (h *Handlers) GetRegistryEntries(w http.ResponseWriter, r *http.Request) {
	category := registry.AddressCategory(mux.Vars(r)["category"])
	entries := h.registry.EntriesByCategory(category)
	if entries == nil {
		entries = []registry.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isTxHash validates a 0x-prefixed 32-byte hex hash
func isTxHash(s string) bool {
	if len(s) != 66 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
