package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"monkeybot/usecases/reconcile"
)

// StatusHandler serves the ops HTTP surface: liveness plus a snapshot of the
// last reconciliation cycle
type StatusHandler struct {
	reconcileUseCase *reconcile.ReconcileUseCase
}

func NewStatusHandler(reconcileUseCase *reconcile.ReconcileUseCase) *StatusHandler {
	return &StatusHandler{reconcileUseCase: reconcileUseCase}
}

// SetupEndpoints registers the ops endpoints with the router
func (h *StatusHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.handleHealth).Methods("GET")
	router.HandleFunc("/status", h.handleStatus).Methods("GET")
}

func (h *StatusHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		log.Printf("❌ Failed to write health check response: %v", err)
	}
}

func (h *StatusHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.reconcileUseCase.Status()); err != nil {
		log.Printf("❌ Failed to write status response: %v", err)
	}
}
