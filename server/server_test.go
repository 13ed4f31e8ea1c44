package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestServe_healthCheckAndGateway(t *testing.T) {
	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- Serve(ctx, grpcLis, httpLis, svc, zap.NewNop())
	}()

	conn, err := grpc.NewClient(
		grpcLis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer conn.Close()

	health := grpc_health_v1.NewHealthClient(conn)
	for _, name := range []string{"", ServiceName} {
		var resp *grpc_health_v1.HealthCheckResponse
		for i := 0; i < 20; i++ {
			cctx, ccancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			resp, err = health.Check(cctx, &grpc_health_v1.HealthCheckRequest{Service: name})
			ccancel()
			if err == nil {
				break
			}
			time.Sleep(50 * time.Millisecond)
		}
		if err != nil {
			t.Fatalf("health check %q failed: %v", name, err)
		}
		if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Errorf("expected SERVING for %q, got %v", name, resp.Status)
		}
	}

	httpResp, err := http.Get(fmt.Sprintf("http://%s/v1/cart", httpLis.Addr().String()))
	if err != nil {
		t.Fatalf("gateway request failed: %v", err)
	}
	httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", httpResp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunServer_portInUse(t *testing.T) {
	lis, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()
	port := fmt.Sprintf("%d", lis.Addr().(*net.TCPAddr).Port)

	svc, _ := newTestService(t)
	err = RunServer(context.Background(), Config{GRPCPort: port, HTTPPort: "0"}, svc, nil)
	if err == nil {
		t.Fatal("expected listen error")
	}
}
