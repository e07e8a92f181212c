package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/docweaver/responder"
)

// Middleware wraps an http.Handler to produce a new http.Handler.
type Middleware func(http.Handler) http.Handler

// Option configures the router via the functional options pattern.
type Option func(*options)

// stage is one built-in middleware. The default chain runs them in
// declaration order, outermost first.
type stage uint8

const (
	stageLogging stage = 1 << iota
	stageRecover
	stageOpenAPI
	stageCORS
	stageTimeout

	allStages = stageLogging | stageRecover | stageOpenAPI | stageCORS | stageTimeout
)

type options struct {
	config    Config
	logger    *slog.Logger
	responder *responder.Responder
	swagger   *openapi3.T
	stages    stage
	outer     []Middleware
	inner     []Middleware
	chain     []Middleware
}

func defaultOptions() *options {
	return &options{
		config: Config{Timeout: 30 * time.Second},
		logger: slog.Default(),
		stages: allStages,
	}
}

func (o *options) enabled(s stage) bool {
	return o.stages&s != 0
}

// middlewareChain returns the chain New applies, outermost first. An explicit
// WithMiddlewareChain replaces everything else.
func (o *options) middlewareChain() []Middleware {
	if len(o.chain) > 0 {
		return slices.Clone(o.chain)
	}
	return slices.Concat(o.outer, o.builtins(), o.inner)
}

func (o *options) builtins() []Middleware {
	resp := o.errorResponder()
	var chain []Middleware

	// Logging runs first so the trace id it assigns reaches every problem
	// rendered further in.
	if o.enabled(stageLogging) && o.logger != nil {
		chain = append(chain, loggingMiddleware(o.logger, resp, o.config.QuietdownRoutes, o.config.HideHeaders))
	}
	if o.enabled(stageRecover) {
		chain = append(chain, recoveryMiddleware(resp))
	}
	if o.enabled(stageOpenAPI) && o.swagger != nil {
		chain = append(chain, oapiMiddleware(o.swagger, resp))
	}
	if o.enabled(stageCORS) && len(o.config.CORS.Origins) > 0 {
		chain = append(chain, corsMiddleware(o.config.CORS))
	}
	if o.enabled(stageTimeout) && o.config.Timeout > 0 {
		chain = append(chain, timeoutMiddleware(o.config.Timeout, resp))
	}
	return chain
}

// errorResponder renders the router's own failures: panics, validation
// errors and timeouts.
func (o *options) errorResponder() *responder.Responder {
	switch {
	case o.responder != nil:
		return o.responder
	case o.logger != nil:
		return responder.NewResponder(responder.WithLogger(o.logger))
	default:
		return responder.NewResponder()
	}
}

func without(s stage) Option {
	return func(o *options) {
		o.stages &^= s
	}
}

// WithConfig replaces the router configuration. Slices are copied.
func WithConfig(cfg Config) Option {
	cfg.QuietdownRoutes = cloneStrings(cfg.QuietdownRoutes)
	cfg.HideHeaders = cloneStrings(cfg.HideHeaders)
	cfg.CORS.Origins = cloneStrings(cfg.CORS.Origins)
	cfg.CORS.Methods = cloneStrings(cfg.CORS.Methods)
	cfg.CORS.Headers = cloneStrings(cfg.CORS.Headers)
	return func(o *options) {
		o.config = cfg
	}
}

// WithConfigMutator edits the configuration in place after defaults and
// WithConfig have been applied.
func WithConfigMutator(mutator func(*Config)) Option {
	return func(o *options) {
		if mutator != nil {
			mutator(&o.config)
		}
	}
}

// WithLogger sets the logger used for request logs and, unless WithResponder
// is given, for rendered failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResponder sets the responder that renders recovered panics, OpenAPI
// validation failures and timeouts. Its subject is attached to request logs.
func WithResponder(r *responder.Responder) Option {
	return func(o *options) {
		o.responder = r
	}
}

// WithSwagger enables request validation against the given OpenAPI document.
func WithSwagger(swagger *openapi3.T) Option {
	return func(o *options) {
		o.swagger = swagger
	}
}

// WithMiddlewares adds middlewares outside the built-in chain.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.outer = append(o.outer, middlewares...)
	}
}

// WithTrailingMiddlewares adds middlewares between the built-in chain and
// the handler.
func WithTrailingMiddlewares(middlewares ...Middleware) Option {
	return func(o *options) {
		o.inner = append(o.inner, middlewares...)
	}
}

// WithMiddlewareChain replaces the whole chain, built-ins included.
func WithMiddlewareChain(middlewares ...Middleware) Option {
	chain := slices.Clone(middlewares)
	return func(o *options) {
		o.chain = chain
	}
}

// WithoutRecoveryMiddleware lets handler panics reach net/http.
func WithoutRecoveryMiddleware() Option { return without(stageRecover) }

// WithoutOpenAPIValidation skips request validation even when a document is
// set.
func WithoutOpenAPIValidation() Option { return without(stageOpenAPI) }

// WithoutCORSMiddleware skips CORS regardless of configuration.
func WithoutCORSMiddleware() Option { return without(stageCORS) }

// WithoutTimeoutMiddleware lets handlers run past Config.Timeout.
func WithoutTimeoutMiddleware() Option { return without(stageTimeout) }

// WithoutLoggingMiddleware disables request logs and trace id assignment.
func WithoutLoggingMiddleware() Option { return without(stageLogging) }

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return slices.Clone(values)
}
