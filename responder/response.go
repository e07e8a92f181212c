package responder

import (
	"net/http"

	"github.com/drblury/docweaver/jsonutil"
)

// HandleAPIError answers with a problem document for status and logs err.
// The optional logMsg values are attached to the log record only.
func (r *Responder) HandleAPIError(w http.ResponseWriter, req *http.Request, status int, err error, logMsg ...string) {
	if err == nil {
		return
	}
	r.writeJSON(w, status, problemContentType, r.problem(req, status, err, logMsg))
}

// HandleInternalServerError reports err as 500.
func (r *Responder) HandleInternalServerError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusInternalServerError, err, logMsg...)
}

// HandleBadRequestError reports err as 400.
func (r *Responder) HandleBadRequestError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusBadRequest, err, logMsg...)
}

// HandleNotFoundError reports err as 404.
func (r *Responder) HandleNotFoundError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusNotFound, err, logMsg...)
}

// HandleTimeout reports err as 503. The router uses it when a request
// outlives its deadline.
func (r *Responder) HandleTimeout(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusServiceUnavailable, err, logMsg...)
}

// HandleErrors picks the status for err with the configured classifier and
// falls back to 500.
func (r *Responder) HandleErrors(w http.ResponseWriter, req *http.Request, err error, msgs ...string) {
	if err == nil {
		return
	}
	status, ok := r.classifyError(err)
	if !ok {
		status = http.StatusInternalServerError
	}
	r.HandleAPIError(w, req, status, err, msgs...)
}

// RespondWithJSON writes v as a JSON body with the given status.
func (r *Responder) RespondWithJSON(w http.ResponseWriter, req *http.Request, status int, v any) {
	r.writeJSON(w, status, jsonContentType, v)
}

func (r *Responder) writeJSON(w http.ResponseWriter, status int, contentType string, payload any) {
	if w == nil {
		return
	}
	body, err := jsonutil.Marshal(payload)
	if err != nil {
		r.logger().Error("failed to encode response", "error", err, "status", status)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	r.write(w, status, contentType, append(body, '\n'))
}

func (r *Responder) write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger().Error("failed to write response", "error", err, "status", status)
	}
}
