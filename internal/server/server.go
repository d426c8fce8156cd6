package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fmhgames/reward-service/internal/adminauth"
	"github.com/fmhgames/reward-service/internal/balance"
	"github.com/fmhgames/reward-service/internal/claims"
	"github.com/fmhgames/reward-service/internal/database"
	"github.com/fmhgames/reward-service/internal/economic"
	"github.com/fmhgames/reward-service/internal/handler"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/metrics"
	"github.com/fmhgames/reward-service/internal/ratelimit"
)

// Config carries the server-level knobs that do not belong to any one service
type Config struct {
	Port            int
	TrustedProxies  []string
	DailyPoolBudget float64
	ClaimRateLimit  int
	AdminRateLimit  int
}

type Server struct {
	httpServer     *http.Server
	dbPool         database.Pool
	claimsService  claims.Service
	balanceService balance.Service
}

// NewServer creates a new Server instance
func NewServer(cfg Config, dbPool database.Pool, claimsService claims.Service, balanceService balance.Service, provider economic.Provider, registry *adminauth.Registry) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	claimLimiter := ratelimit.NewLimiter(cfg.ClaimRateLimit, time.Minute)
	adminLimiter := ratelimit.NewLimiter(cfg.AdminRateLimit, time.Minute)

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.MetricsMiddleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Claim submission authenticates per request with HMAC signatures
		r.Route("/rewards", func(r chi.Router) {
			r.Post("/claim", handler.HandleSubmitClaim(claimsService, claimLimiter))
		})

		r.Route("/economy", func(r chi.Router) {
			r.Get("/state", handler.HandleGetEconomyState(provider, cfg.DailyPoolBudget))
		})

		// Admin routes require a registered bearer token
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(registry, adminLimiter, cfg.TrustedProxies, detector))

			r.Route("/actions", func(r chi.Router) {
				r.Post("/", handler.HandleCreateAction(balanceService))
				r.Get("/{id}", handler.HandleGetAction(balanceService))
				r.Post("/{id}/execute", handler.HandleExecuteAction(balanceService))
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:         dbPool,
		claimsService:  claimsService,
		balanceService: balanceService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Every request gets a session ID; claim responses echo it back
		// so clients can reference it in disputes.
		sessionID := logger.GenerateSessionID()
		ctx := logger.WithSessionID(r.Context(), sessionID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
