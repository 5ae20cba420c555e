package cmd

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	plannergrpc "study-planner/services/planner/adapters/grpc"
	"study-planner/services/planner/adapters/rest/handlers"
	"study-planner/services/planner/adapters/web"
	"study-planner/services/planner/adapters/web/middleware"
	"study-planner/services/planner/core"
)

const (
	healthInterval  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := run(cmd.Context(), a); err != nil {
		a.log.Error("server failed", "error", err)
		return err
	}
	return nil
}

func run(ctx context.Context, a *app) error {
	a.log.Info("starting planner server")

	if err := a.storage.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	key, generated, err := csrfKey(a.cfg.HTTP.CSRFKey)
	if err != nil {
		return err
	}
	if generated {
		a.log.Warn("no csrf key configured, using a random one; forms break across restarts")
	}

	httpListener, grpcListener, err := openListeners(a.cfg.HTTP.Address, a.cfg.GRPCAddress)
	if err != nil {
		return err
	}

	var health *plannergrpc.HealthServer
	pingers := map[string]core.Pinger{"db": a.svc}
	if grpcListener != nil {
		health = plannergrpc.NewHealthServer(a.log, a.svc)
		pingers["grpc"] = health
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	mux := http.NewServeMux()
	protect := web.NewCSRF(a.log, web.CSRFOptions{Key: key, Secure: a.cfg.HTTP.SecureCookies})
	web.Register(mux, a.log, a.svc, a.cfg.HTTP.Timeout, protect)
	handlers.Register(mux, a.log, a.svc, pingers, a.cfg.HTTP.Timeout)
	mux.Handle("GET /metrics", metrics.Handler())

	server := &http.Server{
		ReadHeaderTimeout: a.cfg.HTTP.Timeout,
		Handler:           web.NewRouter(mux, a.log, metrics),
	}

	errCh := make(chan error, 2)

	var grpcServer *grpc.Server
	if grpcListener != nil {
		grpcServer = grpc.NewServer()
		health.Register(grpcServer)
		reflection.Register(grpcServer)

		go health.Watch(ctx, healthInterval)
		go func() {
			a.log.Info("planner gRPC health server is running", "address", a.cfg.GRPCAddress)
			if err := grpcServer.Serve(grpcListener); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	go func() {
		a.log.Info("planner http server is running", "address", httpListener.Addr().String())
		if err := server.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown requested")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("http shutdown failed", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	return runErr
}

// openListeners binds both ports before anything is served. grpcAddr may be
// empty; a failure closes whatever was already bound.
func openListeners(httpAddr, grpcAddr string) (httpLn, grpcLn net.Listener, err error) {
	httpLn, err = net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}
	if grpcAddr == "" {
		return httpLn, nil, nil
	}

	grpcLn, err = net.Listen("tcp", grpcAddr)
	if err != nil {
		_ = httpLn.Close()
		return nil, nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}
	return httpLn, grpcLn, nil
}

// csrfKey accepts a 32-byte raw or 64-char hex key. An empty value yields a
// random key and generated=true.
func csrfKey(raw string) (key []byte, generated bool, err error) {
	switch len(raw) {
	case 0:
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, false, errors.New("generate csrf key: no randomness available")
		}
		return key, true, nil
	case 32:
		return []byte(raw), false, nil
	case 64:
		key, err = hex.DecodeString(raw)
		if err != nil {
			return nil, false, fmt.Errorf("decode csrf key: %w", err)
		}
		return key, false, nil
	default:
		return nil, false, errors.New("csrf key must be 32 bytes or 64 hex characters")
	}
}
