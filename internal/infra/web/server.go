package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"saas-background-remover/internal/config"
	red "saas-background-remover/internal/infra/redis"
	"saas-background-remover/internal/usecase"
)

// Server exposes the payment and image endpoints.
type Server struct {
	payUC   usecase.PaymentUseCase
	imgUC   usecase.RemovalUseCase
	limiter *red.RateLimiter
	cfg     *config.Config
	log     *zerolog.Logger
	srv     *http.Server
}

func NewServer(
	payUC usecase.PaymentUseCase,
	imgUC usecase.RemovalUseCase,
	limiter *red.RateLimiter,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		payUC:   payUC,
		imgUC:   imgUC,
		limiter: limiter,
		cfg:     cfg,
		log:     logger,
	}
}

// Routes builds the chi router. Separate from Start so tests can drive the
// handler directly through httptest.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.traceID)
	r.Use(s.requestLog)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/payment/create-order", s.handleCreateOrder)
		r.With(s.rateLimit("verify-payment")).Post("/payment/verify-payment", s.handleVerifyPayment)
		r.Post("/image/remove", s.handleRemoveBackground)
	})
	return r
}

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Server.Port).Msg("http server listening")
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
