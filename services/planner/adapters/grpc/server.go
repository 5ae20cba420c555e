package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"study-planner/services/planner/core"
)

// ServiceName is the health service name reported next to the overall "" entry.
const ServiceName = "study.planner"

// HealthServer reports SERVING while the database answers pings.
type HealthServer struct {
	log    *slog.Logger
	pinger core.Pinger
	health *health.Server
}

func NewHealthServer(log *slog.Logger, pinger core.Pinger) *HealthServer {
	return &HealthServer{
		log:    log,
		pinger: pinger,
		health: health.NewServer(),
	}
}

// Register attaches the grpc.health.v1 service to s.
func (h *HealthServer) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Check pings once and publishes the resulting status.
func (h *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Warn("health check failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
	return st
}

// Ping reports the last published status without probing the database again,
// so the HTTP ping shows what gRPC health clients currently see.
func (h *HealthServer) Ping(ctx context.Context) error {
	resp, err := h.health.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return err
	}
	if st := resp.GetStatus(); st != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("grpc health is %s", st)
	}
	return nil
}

// Watch re-checks every interval until ctx is done, then marks the server as
// shutting down.
func (h *HealthServer) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		checkCtx, cancel := context.WithTimeout(ctx, interval)
		h.Check(checkCtx)
		cancel()

		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
		}
	}
}
