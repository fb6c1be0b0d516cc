package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"git.home.luguber.info/inful/doclink/internal/logfields"
	"git.home.luguber.info/inful/doclink/internal/metrics"
	"git.home.luguber.info/inful/doclink/internal/version"
)

// Status is the /status response body.
type Status struct {
	State   string      `json:"state"`
	Uptime  string      `json:"uptime"`
	Root    string      `json:"root"`
	LastRun *RunSummary `json:"last_run,omitempty"`
}

type httpServer struct {
	srv *http.Server
	ln  net.Listener
}

// newHTTPServer binds the listener up front so a taken port fails startup
// instead of surfacing later from a goroutine.
func newHTTPServer(d *Daemon) (*httpServer, error) {
	addr := d.cfg.Watch.HTTPAddr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("http startup failed on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", d.handleHealthz)
	mux.HandleFunc("/status", d.handleStatus)
	if d.registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
	}

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return &httpServer{srv: srv, ln: ln}, nil
}

func (h *httpServer) start(logger *slog.Logger) {
	logger.Info("http endpoint started", slog.String("addr", h.ln.Addr().String()))
	go func() {
		if err := h.srv.Serve(h.ln); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", logfields.Error(err))
		}
	}()
}

func (h *httpServer) stop(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", logfields.Error(err))
		return
	}
	logger.Info("http endpoint stopped")
}

func (d *Daemon) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (d *Daemon) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, d.Status())
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", logfields.Error(err))
	}
}
