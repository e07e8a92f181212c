package probe

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Func represents a health check that returns an error when the resource is unavailable.
type Func func(ctx context.Context) error

// PingFunc is a bare check wrapped by NewPingProbe.
type PingFunc func(ctx context.Context) error

// NewPingProbe wraps fn with a name so failures read "<name> probe failed".
func NewPingProbe(name string, fn PingFunc) Func {
	return func(ctx context.Context) error {
		if fn == nil {
			return nilComponentError(name, "ping function")
		}
		ctx = contextOrBackground(ctx)

		if err := fn(ctx); err != nil {
			return fmt.Errorf("%s probe failed: %w", name, err)
		}
		return nil
	}
}

// MongoPinger captures the subset of the MongoDB client used for readiness checks.
type MongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// NewMongoPingProbe creates a Func that pings MongoDB using the provided client.
// If readPref is nil it defaults to readpref.Primary.
func NewMongoPingProbe(client MongoPinger, readPref *readpref.ReadPref) Func {
	return func(ctx context.Context) error {
		if client == nil {
			return nilComponentError("mongo", "client")
		}

		ctx = contextOrBackground(ctx)

		rp := readPref
		if rp == nil {
			rp = readpref.Primary()
		}

		if err := client.Ping(ctx, rp); err != nil {
			return fmt.Errorf("mongo probe failed: %w", err)
		}
		return nil
	}
}

// WithTimeout bounds fn to timeout. A non-positive timeout returns fn as is.
func WithTimeout(fn Func, timeout time.Duration) Func {
	if fn == nil || timeout <= 0 {
		return fn
	}
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(contextOrBackground(ctx), timeout)
		defer cancel()
		return fn(ctx)
	}
}
