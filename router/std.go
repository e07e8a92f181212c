package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"

	"github.com/drblury/docweaver/responder"
)

// New returns a ServeMux serving apiHandle behind the configured middleware
// chain. It panics when apiHandle is nil.
func New(apiHandle http.Handler, opts ...Option) *http.ServeMux {
	if apiHandle == nil {
		panic("router: handler cannot be nil")
	}

	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", applyMiddlewares(apiHandle, settings.middlewareChain()))
	return mux
}

// applyMiddlewares wraps handler so that chain[0] runs first.
func applyMiddlewares(handler http.Handler, chain []Middleware) http.Handler {
	for _, mw := range slices.Backward(chain) {
		if mw != nil {
			handler = mw(handler)
		}
	}
	return handler
}

// loggingMiddleware tags every request with a trace id, taken from the
// incoming X-Trace-Id header or freshly minted, and logs its start and end at
// debug level. Quiet routes still get a trace id but no log lines.
func loggingMiddleware(logger *slog.Logger, resp *responder.Responder, quietdownRoutes, hideHeaders []string) Middleware {
	quiet := cloneStrings(quietdownRoutes)
	hidden := cloneStrings(hideHeaders)

	if subject := resp.Subject(); subject != "" {
		logger = logger.With("subject", subject)
	}
	logger.Debug("request logging enabled", "quietdownRoutes", quiet, "hideHeaders", hidden)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(responder.TraceIDHeader)
			if traceID == "" {
				traceID = responder.NewTraceID()
			}
			w.Header().Set(responder.TraceIDHeader, traceID)
			r = r.WithContext(responder.ContextWithTraceID(r.Context(), traceID))

			if slices.Contains(quiet, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			reqLog := logger.With("traceId", traceID, "method", r.Method, "path", r.URL.Path)
			attrs := []any{"header", redactHeaders(r.Header.Clone(), hidden)}
			if r.ContentLength > 0 {
				attrs = append(attrs, "contentLength", r.ContentLength)
			}
			reqLog.DebugContext(r.Context(), "request started", attrs...)

			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(sw, r)
			reqLog.DebugContext(r.Context(), "request finished", "status", sw.code(), "duration", time.Since(start))
		})
	}
}

// recoveryMiddleware turns a panic into a 500 rendered by resp.
func recoveryMiddleware(resp *responder.Responder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					resp.HandleInternalServerError(w, r, &responder.PanicError{Value: v}, "panic recovered")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// oapiMiddleware rejects requests that do not match swagger. Servers are
// cleared so validation does not depend on the host the service runs on.
// Authentication is not checked here.
func oapiMiddleware(swagger *openapi3.T, resp *responder.Responder) Middleware {
	swagger.Servers = nil
	validate := oapiMW.OapiRequestValidatorWithOptions(swagger, &oapiMW.Options{
		ErrorHandlerWithOpts: func(_ context.Context, err error, w http.ResponseWriter, r *http.Request, opts oapiMW.ErrorHandlerOpts) {
			resp.HandleAPIError(w, r, opts.StatusCode, err, "request failed OpenAPI validation")
		},
		Options: openapi3filter.Options{
			AuthenticationFunc: func(context.Context, *openapi3filter.AuthenticationInput) error {
				return nil
			},
		},
	})
	return validate
}

// corsMiddleware answers preflight requests and sets the allow-origin header
// for configured origins. "*" allows any origin.
func corsMiddleware(cfg CORSConfig) Middleware {
	origins := cloneStrings(cfg.Origins)
	methods := strings.Join(cfg.Methods, ",")
	headers := strings.Join(cfg.Headers, ",")

	return func(next http.Handler) http.Handler {
		if len(origins) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if slices.Contains(origins, "*") || slices.Contains(origins, origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
			}
			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			w.WriteHeader(http.StatusOK)
		})
	}
}

// timeoutMiddleware gives each request a deadline. The handler writes into a
// buffer; if the deadline passes first the buffer is dropped and resp renders
// a 503 problem instead. Panics in the handler are re-raised on the serving
// goroutine so recoveryMiddleware sees them.
func timeoutMiddleware(timeout time.Duration, resp *responder.Responder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			r = r.WithContext(ctx)

			buf := &bufferedWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(buf, r)
				close(done)
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				buf.flushTo(w)
			case <-ctx.Done():
				buf.discard()
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return
				}
				err := fmt.Errorf("request exceeded %s: %w", timeout, ctx.Err())
				resp.HandleTimeout(w, r, err, "handler did not finish in time")
			}
		})
	}
}

// bufferedWriter holds a response until the handler finishes. Writes after
// discard fail with http.ErrHandlerTimeout.
type bufferedWriter struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	status    int
	discarded bool
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded || b.status != 0 {
		return
	}
	b.status = status
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.discarded {
		return 0, http.ErrHandlerTimeout
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedWriter) discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.discarded = true
}

func (b *bufferedWriter) flushTo(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	dst := w.Header()
	for k, v := range b.header {
		dst[k] = v
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}

// statusWriter records the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusWriter) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(p)
}

func (s *statusWriter) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func (s *statusWriter) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// redactHeaders replaces the values of the hidden headers with their total
// length and returns headers.
func redactHeaders(headers http.Header, hidden []string) http.Header {
	for _, name := range hidden {
		key := http.CanonicalHeaderKey(name)
		values, ok := headers[key]
		if !ok {
			continue
		}
		size := 0
		for _, v := range values {
			size += len(v)
		}
		headers[key] = []string{fmt.Sprintf("[REDACTED - %d bytes]", size)}
	}
	return headers
}
