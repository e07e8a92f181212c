package responder

import (
	"errors"
	"fmt"
	"net/http"
)

// HandlerFunc is a request handler that reports failure by returning an
// error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorHandlerFunc receives the failures forwarded by Wrap.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// PDFFunc produces the document served by PDFHandler.
type PDFFunc func(r *http.Request) ([]byte, error)

var errNilHandler = errors.New("responder: handler is nil")

// PanicError carries a value recovered from a panicking HandlerFunc.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Wrap adapts fn to http.HandlerFunc. A returned error or a recovered panic
// is passed to next exactly once. http.ErrAbortHandler panics are re-raised
// so net/http can abort the response.
func Wrap(fn HandlerFunc, next ErrorHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := invoke(fn, w, req); err != nil && next != nil {
			next(w, req, err)
		}
	}
}

func invoke(fn HandlerFunc, w http.ResponseWriter, req *http.Request) (err error) {
	if fn == nil {
		return errNilHandler
	}
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler {
				panic(v)
			}
			err = &PanicError{Value: v}
		}
	}()
	return fn(w, req)
}

// Handler wraps fn with the responder's error pipeline, which defaults to
// Error.
func (r *Responder) Handler(fn HandlerFunc) http.HandlerFunc {
	next := r.errorHandler
	if next == nil {
		next = r.Error
	}
	return Wrap(fn, next)
}

// PDF writes body as an attachment with a randomly generated file name.
func (r *Responder) PDF(w http.ResponseWriter, req *http.Request, body []byte) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", newFileName("pdf")))
	r.write(w, http.StatusOK, pdfContentType, body)
}

// PDFHandler serves the document returned by fn, forwarding failures to the
// responder's error pipeline.
func (r *Responder) PDFHandler(fn PDFFunc) http.HandlerFunc {
	return r.Handler(func(w http.ResponseWriter, req *http.Request) error {
		if fn == nil {
			return errNilHandler
		}
		body, err := fn(req)
		if err != nil {
			return err
		}
		r.PDF(w, req, body)
		return nil
	})
}
