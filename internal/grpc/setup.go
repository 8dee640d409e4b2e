// Package grpc exposes the process's health over the standard gRPC health
// protocol so orchestrators can probe it with grpc_health_probe or grpcurl.
package grpc

import (
	"sync"

	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// WebServiceName is the health service reporting on the web front end.
const WebServiceName = "showfinder.web"

var (
	grpcServerMetrics         *grpcprom.ServerMetrics
	registerServerMetricsOnce sync.Once
)

// HealthServer is a gRPC server carrying the health and reflection services.
type HealthServer struct {
	*grpc.Server
	health *health.Server
}

// NewHealthServer builds a server reporting SERVING for the whole process
// and for WebServiceName.
func NewHealthServer() *HealthServer {
	registerServerMetricsOnce.Do(func() {
		grpcServerMetrics = grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		)
		prometheus.MustRegister(grpcServerMetrics)
	})
	srvMetrics := grpcServerMetrics

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(srvMetrics.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(srvMetrics.StreamServerInterceptor()),
	)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	hs.SetServingStatus(WebServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)
	srvMetrics.InitializeMetrics(srv)

	return &HealthServer{Server: srv, health: hs}
}

// Shutdown reports NOT_SERVING to watchers, then stops the server once
// in-flight calls have finished.
func (s *HealthServer) Shutdown() {
	s.health.Shutdown()
	s.GracefulStop()
}
