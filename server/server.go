// Package server exposes the ops HTTP surface: health, readiness, a JSON
// status snapshot, and Prometheus metrics. It serves operators only; all
// user-facing output goes through chat.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onnwee/evespai/telemetry"
)

// Deps are the probes the status endpoints report on. Either store may be nil
// when its connection failed at startup.
type Deps struct {
	SpinnerDB     *sql.DB
	SDEDB         *sql.DB
	CorporationID int64
}

// NewMux returns the HTTP handler with all ops routes.
func NewMux(deps Deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/readyz", deps.handleReadyz)
	mux.HandleFunc("/status", deps.handleStatus)
	return mux
}

// Start runs the ops server until ctx is cancelled, then shuts it down
// gracefully.
func Start(ctx context.Context, deps Deps, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (d Deps) ping(ctx context.Context, name string, db *sql.DB) bool {
	if db == nil {
		telemetry.SetStoreUp(name, false)
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	up := db.PingContext(pingCtx) == nil
	telemetry.SetStoreUp(name, up)
	return up
}

// handleReadyz answers 200 only when both stores respond. A bot with a dead
// store still serves /healthz so the process isn't restarted for an outage it
// cannot fix.
func (d Deps) handleReadyz(w http.ResponseWriter, r *http.Request) {
	spinnerUp := d.ping(r.Context(), "spinner", d.SpinnerDB)
	sdeUp := d.ping(r.Context(), "sde", d.SDEDB)
	if !spinnerUp || !sdeUp {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("degraded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (d Deps) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := struct {
		SpinnerUp      bool  `json:"spinner_up"`
		SDEUp          bool  `json:"sde_up"`
		CorporationID  int64 `json:"corporation_id"`
		CorpConfigured bool  `json:"corporation_configured"`
	}{
		SpinnerUp:      d.ping(r.Context(), "spinner", d.SpinnerDB),
		SDEUp:          d.ping(r.Context(), "sde", d.SDEDB),
		CorporationID:  d.CorporationID,
		CorpConfigured: d.CorporationID != 0,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		slog.Warn("failed to write status response", slog.Any("err", err))
	}
}
