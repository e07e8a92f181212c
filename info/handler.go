package info

import (
	"errors"
	"time"

	"github.com/drblury/docweaver/probe"
	"github.com/drblury/docweaver/responder"
)

// InfoProvider returns the payload served by GetVersion.
type InfoProvider func() any

// SwaggerProvider returns the raw OpenAPI document served by GetOpenAPIJSON,
// usually an embedded file.
type SwaggerProvider func() ([]byte, error)

// InfoOption configures NewInfoHandler.
type InfoOption func(*InfoHandler)

const defaultProbeTimeout = 2 * time.Second

// ProbeFunc reports a failed liveness or readiness check by returning an
// error.
type ProbeFunc = probe.Func

// Check is a named ProbeFunc. Readiness responses list the names of the
// checks that passed, and failures are reported by name.
type Check struct {
	Name  string
	Probe ProbeFunc
}

// InfoHandler serves the status, health, readiness, version and OpenAPI
// endpoints of a service. Responses and failures go through the embedded
// Responder.
type InfoHandler struct {
	*responder.Responder
	version      InfoProvider
	openapi      SwaggerProvider
	probeTimeout time.Duration
	liveness     []Check
	readiness    []Check
}

// NewInfoHandler returns a handler with an empty version payload, no checks
// and no OpenAPI document.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder:    responder.NewResponder(),
		version:      func() any { return map[string]string{} },
		openapi:      func() ([]byte, error) { return nil, errors.New("api swagger provider not configured") },
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder sets the responder used for payloads and failures.
func WithInfoResponder(r *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if r != nil {
			ih.Responder = r
		}
	}
}

// WithInfoProvider sets the version payload source.
func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.version = provider
		}
	}
}

// WithSwaggerProvider sets the OpenAPI document source.
func WithSwaggerProvider(provider SwaggerProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.openapi = provider
		}
	}
}

// WithProbeTimeout bounds each individual check. Non-positive values are
// ignored.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the liveness checks. They are named
// "probe 1", "probe 2" and so on; nil entries are dropped.
func WithLivenessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.liveness = numbered(checks)
	}
}

// WithReadinessChecks replaces the readiness checks, named like
// WithLivenessChecks names them.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readiness = numbered(checks)
	}
}

// WithReadinessCheck appends a named readiness check.
func WithReadinessCheck(name string, check ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		if check != nil {
			ih.readiness = append(ih.readiness, Check{Name: name, Probe: check})
		}
	}
}

// WithMongoReadiness appends a readiness check named "mongodb" that pings
// the primary through pinger.
func WithMongoReadiness(pinger probe.MongoPinger) InfoOption {
	return WithReadinessCheck("mongodb", probe.NewMongoPingProbe(pinger, nil))
}
