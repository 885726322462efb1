// Package reportserver serves the computed engine results over HTTP. The
// server is read-only: every handler answers from the Results structure
// built once at startup.
package reportserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/agriscan/agriview/internal/engine"
	"github.com/agriscan/agriview/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the results HTTP server
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	cfg      config.ServerData
	Server   http.Server
	results  *engine.Results
	runID    string
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new results server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg config.ServerData, results *engine.Results, runID string, logger *zap.SugaredLogger) (*Controller, error) {
	if results == nil {
		return nil, fmt.Errorf("report server needs computed results")
	}

	ctrl := &Controller{
		ctx:     ctx,
		wg:      wg,
		cfg:     cfg,
		results: results,
		runID:   runID,
		logger:  logger,
	}
	ctrl.handlers = NewHandlers(results, runID, logger)

	router := mux.NewRouter()
	router.HandleFunc("/api/summary", ctrl.handlers.GetSummary).Methods(http.MethodGet)
	router.HandleFunc("/api/zones", ctrl.handlers.GetZones).Methods(http.MethodGet)
	router.HandleFunc("/api/zones/{id}", ctrl.handlers.GetZone).Methods(http.MethodGet)
	router.HandleFunc("/api/phases", ctrl.handlers.GetPhases).Methods(http.MethodGet)
	router.HandleFunc("/api/status", ctrl.handlers.GetStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/aggregate", ctrl.handlers.GetAggregates).Methods(http.MethodGet)
	router.Use(ctrl.requestLogger)

	ctrl.Server = http.Server{
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return ctrl, nil
}

// StartController starts the HTTP listener and shuts it down when the
// controller context is cancelled.
func (c *Controller) StartController() error {
	addr := net.JoinHostPort(c.cfg.ListenAddr, strconv.Itoa(c.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("report server could not listen on %s: %w", addr, err)
	}

	c.logger.Infof("report server listening on %s", addr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Server.Serve(listener); err != nil && err != http.ErrServerClosed {
			c.logger.Errorf("report server error: %v", err)
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			c.logger.Errorf("report server shutdown error: %v", err)
		}
	}()

	return nil
}

// requestLogger logs each request with its duration and status.
func (c *Controller) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.logger.Debugf("%s %s %d %v", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
