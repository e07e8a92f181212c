package responder

import (
	"context"
	mathrand "math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// TraceIDHeader carries the request trace id on responses.
const TraceIDHeader = "X-Trace-Id"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

type traceIDKey struct{}

// NewTraceID returns a fresh ULID in its canonical string form.
func NewTraceID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ContextWithTraceID attaches id to ctx. Problems and error bodies rendered
// for a request carrying this context reuse the id instead of minting one.
func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext returns the id stored by ContextWithTraceID, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

func traceIDFor(req *http.Request) string {
	if req != nil {
		if id := TraceIDFromContext(req.Context()); id != "" {
			return id
		}
	}
	return NewTraceID()
}

func newFileName(ext string) string {
	return strings.ToLower(NewTraceID()) + "." + ext
}
