package query

// SuccessFunc receives the document produced by a query.
type SuccessFunc[T any] func(result T)

// ErrorFunc receives the error returned by a failing query.
type ErrorFunc func(err error)

// NotFoundFunc fires when a query completes without a document.
type NotFoundFunc func()

// Hooks groups the optional outcome callbacks. Any field may be nil.
type Hooks[T any] struct {
	OnSuccess  SuccessFunc[T]
	OnError    ErrorFunc
	OnNotFound NotFoundFunc
}

func (h Hooks[T]) success(result T) {
	if h.OnSuccess != nil {
		h.OnSuccess(result)
	}
}

func (h Hooks[T]) failure(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h Hooks[T]) notFound() {
	if h.OnNotFound != nil {
		h.OnNotFound()
	}
}

// CatchErrorProps is accepted by Runner.CatchError.
type CatchErrorProps struct {
	// OnError is handed the Runner's global ErrorFunc, which may be nil.
	OnError func(global ErrorFunc)
}
