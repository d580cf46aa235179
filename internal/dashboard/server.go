package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"commitgen.dev/commitgen/internal/runtime"
	"commitgen.dev/commitgen/internal/utils"
)

// shutdownGrace is how long in-flight requests get to finish once a stop
// signal arrives.
const shutdownGrace = 5 * time.Second

// Server hosts the dashboard for one repository.
type Server struct {
	rctx   *runtime.Context
	addr   string
	logger *slog.Logger
	router *mux.Router

	// OpenBrowser opens the dashboard URL in the default browser once the
	// listener is up.
	OpenBrowser bool
}

// NewServer wires the dashboard routes for a repository context.
func NewServer(rctx *runtime.Context, addr string) *Server {
	s := &Server{
		rctx:   rctx,
		addr:   addr,
		logger: rctx.Splog.Logger(),
		router: mux.NewRouter(),
	}

	s.router.Use(s.logRequests)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/diff", s.handleDiff).Methods(http.MethodGet)
	api.HandleFunc("/stage", s.handleStage).Methods(http.MethodPost)
	api.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodPost)
	api.HandleFunc("/commit", s.handleCommit).Methods(http.MethodPost)

	return s
}

// Handler exposes the routing table, so tests can drive the server without
// binding a socket.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is canceled or SIGINT/SIGTERM arrives, then
// drains in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("dashboard failed to listen on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	url := fmt.Sprintf("http://%s", ln.Addr())
	s.rctx.Splog.Info("Dashboard listening on %s", url)
	s.rctx.Splog.Tip("Press Ctrl+C to stop")

	if s.OpenBrowser {
		if err := utils.OpenBrowser(url); err != nil {
			s.logger.Debug("failed to open browser", "error", err)
		}
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("dashboard server failed: %w", err)
	case <-sigCh:
	case <-ctx.Done():
	}

	s.rctx.Splog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// logRequests records every request to the log file. Debug level keeps the
// console output quiet while the file captures the full trail.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String())
	})
}
