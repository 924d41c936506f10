// Package sink implements the task-commit sink: the HTTP service the
// label pipeline posts each issued barcode to. Accepted records land on
// the ops board, where they feed barcode-number continuation and exports.
package sink

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dyluth/pulse/internal/commit"
	"github.com/dyluth/pulse/pkg/board"
)

// HealthResponse is the JSON body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server accepts commit records over HTTP and stores them on the board.
type Server struct {
	client  *board.Client
	metrics *Collector
	server  *http.Server
	now     func() time.Time
}

// NewServer creates a sink server over the given board client.
func NewServer(client *board.Client, metrics *Collector, addr string) *Server {
	s := &Server{
		client:  client,
		metrics: metrics,
		now:     time.Now,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/task-update", s.handleTaskUpdate).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Router exposes the HTTP handler, mainly for httptest.
func (s *Server) Router() http.Handler {
	return s.server.Handler
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[Sink] HTTP server error: %v", err)
		}
	}()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleTaskUpdate handles POST /api/v1/task-update.
//
// The body is one commit record. A malformed or invalid record is
// rejected with status "error" and a message; a stored record answers
// status "success". Rejections never abort the sender's batch, so the
// reply always carries a well-formed JSON body.
func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	started := s.now()
	s.metrics.RecordReceived()

	var req commit.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reject(w, http.StatusBadRequest, "request body is not valid JSON", nil)
		return
	}

	rec := &board.CommitRecord{
		EmployeeName:  req.EmployeeName,
		LiveTask:      req.LiveTask,
		Status:        board.CommitStatus(req.Status),
		IsoBarcode:    req.IsoBarcode,
		Erase:         req.Erase,
		CommittedAtMs: s.now().UnixMilli(),
	}
	if err := rec.Validate(); err != nil {
		s.reject(w, http.StatusBadRequest, err.Error(), &req)
		return
	}

	if err := s.client.PutCommit(r.Context(), rec); err != nil {
		s.reject(w, http.StatusInternalServerError, "failed to store commit", &req)
		log.Printf("[Sink] Failed to store commit %s: %v", req.IsoBarcode, err)
		return
	}

	s.metrics.RecordAccepted(s.now().Sub(started).Seconds())
	s.logEvent("commit_accepted", map[string]interface{}{
		"employee": rec.EmployeeName,
		"task":     rec.LiveTask,
		"barcode":  rec.IsoBarcode,
	})

	writeJSON(w, http.StatusOK, commit.Response{Status: "success"})
}

// handleHealth handles GET /healthz.
// Returns 200 OK if Redis is accessible, 503 Service Unavailable otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{Status: "healthy"}

	if err := s.client.Ping(ctx); err != nil {
		response.Status = "unhealthy"
		response.Redis = "disconnected"
		response.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response.Redis = "connected"
	writeJSON(w, http.StatusOK, response)
}

// reject answers an error response and counts the rejection. The request
// is included in the event log when it decoded far enough to name a
// barcode.
func (s *Server) reject(w http.ResponseWriter, status int, message string, req *commit.Request) {
	s.metrics.RecordRejected()

	data := map[string]interface{}{"reason": message}
	if req != nil {
		data["employee"] = req.EmployeeName
		data["barcode"] = req.IsoBarcode
	}
	s.logEvent("commit_rejected", data)

	writeJSON(w, status, commit.Response{Status: "error", Message: message})
}

func (s *Server) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = s.now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "sink"
	data["event_type"] = eventType
	data["facility"] = s.client.Facility()

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Sink] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[Sink] Failed to encode response: %v", err)
	}
}
