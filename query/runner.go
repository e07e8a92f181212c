package query

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
)

// QueryFunc performs one operation against coll. Returning a nil result with
// a nil error, or mongo.ErrNoDocuments, reports that nothing was found.
type QueryFunc[T any] func(ctx context.Context, coll *mongo.Collection) (*T, error)

// Invocation describes a single Run call.
type Invocation[T any] struct {
	Collection *mongo.Collection
	Query      QueryFunc[T]
	Hooks[T]
}

// Option configures a Runner.
type Option func(*runnerOptions)

type runnerOptions struct {
	log *slog.Logger
}

// WithLogger sets the logger used for outcome debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *runnerOptions) {
		if logger != nil {
			o.log = logger
		}
	}
}

// Runner executes queries and dispatches their outcome. A Runner holds no
// mutable state and is safe for concurrent use.
type Runner[T any] struct {
	global Hooks[T]
	log    *slog.Logger
}

// New returns a Runner whose global hooks fire after the per-call hooks of
// every Run.
func New[T any](global Hooks[T], opts ...Option) *Runner[T] {
	settings := runnerOptions{log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}
	return &Runner[T]{global: global, log: settings.log}
}

// Run executes inv.Query against inv.Collection. Exactly one outcome fires:
// success with the document, not-found, or error. A returned error matching
// mongo.ErrNoDocuments reaches OnNotFound, not OnError; a panic always
// reaches OnError. Query failures are handed to the hooks and never
// returned; the only error Run returns is ErrInvalidArgument, before the
// query is attempted.
func (r *Runner[T]) Run(ctx context.Context, inv Invocation[T]) error {
	if inv.Collection == nil {
		return invalidArgument("collection")
	}
	if inv.Query == nil {
		return invalidArgument("query function")
	}

	result, err := r.execute(ctx, inv)
	logger := r.log.With("collection", inv.Collection.Name())

	var panicErr *PanicError
	switch {
	case errors.As(err, &panicErr), err != nil && !errors.Is(err, mongo.ErrNoDocuments):
		logger.DebugContext(ctx, "query failed", "error", err)
		inv.Hooks.failure(err)
		r.global.failure(err)
	case result == nil:
		logger.DebugContext(ctx, "query found no document")
		inv.Hooks.notFound()
		r.global.notFound()
	default:
		logger.DebugContext(ctx, "query succeeded")
		inv.Hooks.success(*result)
		r.global.success(*result)
	}
	return nil
}

func (r *Runner[T]) execute(ctx context.Context, inv Invocation[T]) (result *T, err error) {
	defer func() {
		if v := recover(); v != nil {
			result, err = nil, &PanicError{Value: v}
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	return inv.Query(ctx, inv.Collection)
}

// CatchError passes the Runner's global error hook itself, not an error
// value, to props.OnError.
func (r *Runner[T]) CatchError(props CatchErrorProps) {
	if props.OnError != nil {
		props.OnError(r.global.OnError)
	}
}
