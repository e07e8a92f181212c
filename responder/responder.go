package responder

import (
	"log/slog"
	"net/http"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
	pdfContentType     = "application/pdf"
	statusDocBaseURL   = "https://httpstatuses.io"
)

// ErrorClassifierFunc picks the status HandleErrors uses for err. Returning
// false leaves err to the 500 fallback.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// ResponderOption configures NewResponder.
type ResponderOption func(*Responder)

// StatusMetadata describes how problems of one status are titled and logged.
// Empty fields are derived from the status: the title from
// http.StatusText, the type from httpstatuses.io, the log message from the
// title. A zero LogLevel logs at error.
type StatusMetadata struct {
	TypeURI  string
	Title    string
	LogLevel slog.Level
	LogMsg   string
}

// Responder renders the JSON envelopes of a single resource. The subject label
// names the resource in generated messages such as "Note created" and
// "Note not found". A Responder is immutable after construction and safe for
// concurrent use.
type Responder struct {
	subject      string
	log          *slog.Logger
	statuses     map[int]StatusMetadata
	classify     ErrorClassifierFunc
	errorHandler ErrorHandlerFunc
}

// NewResponder returns a Responder with no subject, slog.Default, the
// DefaultErrorClassifier and metadata for 400, 404, 500 and 503.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log: slog.Default(),
		statuses: map[int]StatusMetadata{
			http.StatusBadRequest:          {LogLevel: slog.LevelWarn},
			http.StatusNotFound:            {LogLevel: slog.LevelWarn},
			http.StatusInternalServerError: {LogLevel: slog.LevelError},
			http.StatusServiceUnavailable:  {LogLevel: slog.LevelWarn, LogMsg: "Request timed out"},
		},
		classify: DefaultErrorClassifier,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithSubject sets the resource label used by Success and Error messages.
func WithSubject(subject string) ResponderOption {
	return func(r *Responder) {
		r.subject = subject
	}
}

// WithLogger sets the logger for failure records. A nil logger is ignored.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier replaces the classifier used by HandleErrors. A nil
// classifier sends every error to 500.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.classify = classifier
	}
}

// WithErrorHandler sets the pipeline that Handler forwards failures to.
// Without it failures are rendered by Error.
func WithErrorHandler(next ErrorHandlerFunc) ResponderOption {
	return func(r *Responder) {
		r.errorHandler = next
	}
}

// WithStatusMetadata replaces the metadata for status.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statuses == nil {
			r.statuses = make(map[int]StatusMetadata)
		}
		r.statuses[status] = meta
	}
}

// Subject returns the configured resource label.
func (r *Responder) Subject() string {
	if r == nil {
		return ""
	}
	return r.subject
}

// Logger returns the logger failures are recorded with.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Responder) classifyError(err error) (int, bool) {
	if r.classify == nil {
		return 0, false
	}
	return r.classify(err)
}
