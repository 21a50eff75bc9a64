// Package server serves the amortization web UI and its JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server owns the listener and HTTP server for one serve session.
type Server struct {
	cfg        *Config
	logger     *zap.Logger
	httpServer *http.Server

	// openURL launches a browser; replaced in tests.
	openURL func(url string) error

	ready chan struct{}
	addr  string
}

// New builds a Server from cfg. Call Run to start it.
func New(cfg *Config, logger *zap.Logger, version string) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Handler:           NewHandler(logger, cfg.BodySizeBytes(), version),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		openURL: OpenBrowser,
		ready:   make(chan struct{}),
	}
}

// Ready is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the address the server listens on. It is only valid after
// Ready is closed.
func (s *Server) Addr() string {
	return s.addr
}

// URL returns the base URL of the web UI.
func (s *Server) URL() string {
	return "http://" + s.addr + "/"
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	s.addr = listener.Addr().String()
	close(s.ready)

	s.logger.Info("serving web UI",
		zap.String("op", "server.Run"),
		zap.String("url", s.URL()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down web UI", zap.String("op", "server.Run"))
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	})

	if s.cfg.OpenBrowser {
		if err := s.openURL(s.URL()); err != nil {
			s.logger.Warn("failed to open browser",
				zap.String("op", "server.Run"),
				zap.String("url", s.URL()),
				zap.Error(err),
			)
		}
	}

	return g.Wait()
}

// OpenBrowser opens url in the desktop's default browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
