package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/WheelPortal_Go/internal/database"
	_ "github.com/osse101/WheelPortal_Go/internal/docs"
	"github.com/osse101/WheelPortal_Go/internal/handler"
	"github.com/osse101/WheelPortal_Go/internal/logger"
	"github.com/osse101/WheelPortal_Go/internal/metrics"
	"github.com/osse101/WheelPortal_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port            int
	TrustedProxies  []string
	RateLimit       int
	RateLimitWindow time.Duration
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance. dbPool may be nil when history is read from the portal.
// Open event streams only end when the hub closes them, so the hub is stopped as
// soon as Shutdown begins.
func NewServer(opts Options, dbPool database.Pool, wheelHandler *handler.WheelHandler, hub *sse.Hub) *Server {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts, dbPool, wheelHandler, hub),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
	if hub != nil {
		httpServer.RegisterOnShutdown(hub.Stop)
	}
	return &Server{
		httpServer: httpServer,
		dbPool:     dbPool,
	}
}

// NewRouter builds the route tree and middleware stack
func NewRouter(opts Options, dbPool database.Pool, wheelHandler *handler.WheelHandler, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	limiter := NewRateLimiter(opts.RateLimit, opts.RateLimitWindow)

	r.Use(SecurityHeadersMiddleware())
	r.Use(requestIDMiddleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, limiter))
	r.Use(IdentityMiddleware(opts.TrustedProxies))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/wheel", func(r chi.Router) {
		r.Get("/config", wheelHandler.HandleGetConfig)
		r.Post("/spin", wheelHandler.HandleSpin)
		r.Post("/invoice", wheelHandler.HandleCreateInvoice)
		r.Post("/payment", wheelHandler.HandlePayment)
		r.Get("/session", wheelHandler.HandleGetSession)
		r.Get("/outcome", wheelHandler.HandleGetOutcome)
		r.Post("/dismiss", wheelHandler.HandleDismiss)
		r.Post("/cancel", wheelHandler.HandleCancel)
		r.Get("/history", wheelHandler.HandleGetHistory)
		r.Get("/events", sse.Handler(hub, handler.UserIDFromRequest))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
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
		statusCode:     http.StatusOK,
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

// Flush lets the event stream through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// requestIDMiddleware reuses the caller's X-Request-ID or generates one,
// stores it in the context and echoes it on the response
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), requestID)))
	})
}

func isQuietPath(path string) bool {
	for _, prefix := range QuietPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func sanitizeHeaders(h http.Header) http.Header {
	sanitized := make(http.Header, len(h))
	for k, v := range h {
		sanitized[k] = v
		for _, secret := range RedactedHeaders {
			if strings.EqualFold(k, secret) {
				sanitized[k] = []string{RedactedValue}
				break
			}
		}
	}
	return sanitized
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		log := logger.FromContext(r.Context())

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start listens on the configured port and serves until Stop
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Stop
func (s *Server) Serve(ln net.Listener) error {
	slog.Default().Info(LogMsgServerStarting, "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
