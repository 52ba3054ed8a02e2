//nolint:gochecknoglobals
package metrics

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contestmon",
		Name:      "frames_decoded_total",
		Help:      "The total number of broadcast frames decoded, by kind",
	}, []string{"kind"})

	FramesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contestmon",
		Name:      "frames_dropped_total",
		Help:      "The total number of datagrams dropped, by reason",
	}, []string{"reason"})

	DatagramBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "contestmon",
		Name:      "datagram_bytes_total",
		Help:      "The total size of datagrams received",
	})
)

// Server exposes /metrics over HTTP.
type Server struct {
	f      *fiber.App
	addr   string
	logger *slog.Logger
}

func NewServer(addr string, logger *slog.Logger) *Server {
	s := &Server{
		addr:   addr,
		logger: logger,
		f:      fiber.New(fiber.Config{EnablePrintRoutes: false, DisableStartupMessage: true}),
	}

	s.f.Get("/metrics", getMetricsHandler())

	return s
}

func (s *Server) Address() string {
	return s.addr
}

// Listen serves until Shutdown is called. Run it as a goroutine.
func (s *Server) Listen() error {
	s.logger.Info("serving metrics at " + s.addr)

	if err := s.f.Listen(s.addr); err != nil {
		s.logger.Error("metrics server failed", slog.Any("error", err))
		return err
	}

	return nil
}

func (s *Server) Shutdown() error {
	return s.f.Shutdown()
}

func getMetricsHandler() fiber.Handler {
	handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})

	return adaptor.HTTPHandler(handler)
}
