// Package server exposes the storefront over an HTTP JSON gateway and a gRPC
// listener carrying health checks and reflection.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service name reported for the cart API.
const ServiceName = "storefront.Cart"

const shutdownTimeout = 5 * time.Second

// Config configures the listeners.
type Config struct {
	GRPCPort string
	HTTPPort string
}

// RunServer listens on the configured ports and serves until ctx is done.
func RunServer(ctx context.Context, cfg Config, svc *Service, logger *zap.Logger) error {
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.GRPCPort, err)
	}
	httpLis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.HTTPPort))
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("failed to listen on port %s: %w", cfg.HTTPPort, err)
	}
	return Serve(ctx, grpcLis, httpLis, svc, logger)
}

// Serve runs the gRPC server on grpcLis and the HTTP gateway on httpLis until
// ctx is done or either server fails. Both listeners are closed on return.
func Serve(ctx context.Context, grpcLis, httpLis net.Listener, svc *Service, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	gateway, err := NewGateway(svc, logger.Named("http"))
	if err != nil {
		_ = grpcLis.Close()
		_ = httpLis.Close()
		return fmt.Errorf("failed to build gateway: %w", err)
	}

	s := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	reflection.Register(s)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	httpServer := &http.Server{
		Handler:           gateway,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("storefront server started",
		zap.String("grpc_addr", grpcLis.Addr().String()),
		zap.String("http_addr", httpLis.Addr().String()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("failed to serve grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("storefront server stopping")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		s.GracefulStop()
		return err
	})

	return g.Wait()
}
