package responder

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// CauseInvalidID tags errors caused by a malformed or unknown resource id.
const CauseInvalidID = "invalid_id"

// ErrInvalidID matches, through errors.Is, any CausedError tagged with
// CauseInvalidID.
var ErrInvalidID = &CausedError{Message: "invalid id", Cause: CauseInvalidID}

// CausedError is an error tagged with a machine readable cause. It is the
// shape serialised into error response bodies.
type CausedError struct {
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
	Err     error  `json:"-"`
}

// NewCausedError tags err with cause. The message is taken from err.
func NewCausedError(cause string, err error) *CausedError {
	ce := &CausedError{Cause: cause, Err: err}
	if err != nil {
		ce.Message = err.Error()
	}
	return ce
}

// InvalidID tags err with CauseInvalidID.
func InvalidID(err error) error {
	if err == nil {
		return nil
	}
	return NewCausedError(CauseInvalidID, err)
}

func (e *CausedError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CausedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a bare CausedError sentinel, one without a
// wrapped error, carrying the same cause. ErrInvalidID matches this way.
func (e *CausedError) Is(target error) bool {
	t, ok := target.(*CausedError)
	if !ok || t == nil {
		return false
	}
	return t.Err == nil && t.Cause != "" && t.Cause == e.Cause
}

// CauseOf returns the cause tag of the first CausedError in err's chain.
func CauseOf(err error) string {
	var ce *CausedError
	if errors.As(err, &ce) {
		return ce.Cause
	}
	return ""
}

// DefaultErrorClassifier maps invalid ids and missing documents to 404.
func DefaultErrorClassifier(err error) (int, bool) {
	switch {
	case CauseOf(err) == CauseInvalidID, errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound, true
	default:
		return 0, false
	}
}

// MessageBody is the {"message": ...} envelope.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the envelope rendered by Error for unexpected failures.
type ErrorBody struct {
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail is the serialisable form of a failure. Only the message and
// cause tag are exposed.
type ErrorDetail struct {
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

// Error translates err into a response. Errors tagged CauseInvalidID become
// 404 with "<subject> not found"; anything else becomes 500 with the error
// serialised under "error". A nil err writes nothing.
func (r *Responder) Error(w http.ResponseWriter, req *http.Request, err error) {
	if err == nil {
		return
	}

	if CauseOf(err) == CauseInvalidID {
		r.RespondWithJSON(w, req, http.StatusNotFound, MessageBody{Message: r.subject + " not found"})
		return
	}

	traceID := traceIDFor(req)
	r.report(req, r.metaFor(http.StatusInternalServerError), http.StatusInternalServerError, err, traceID, nil)
	r.RespondWithJSON(w, req, http.StatusInternalServerError, ErrorBody{
		Message: "Error",
		Error: ErrorDetail{
			Message: err.Error(),
			Cause:   CauseOf(err),
			TraceID: traceID,
		},
	})
}
