package info

import (
	"net/http"

	"github.com/drblury/docweaver/responder"
)

// Register mounts the endpoints under prefix, e.g. "/info/status".
func (ih *InfoHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/status", ih.GetStatus)
	mux.HandleFunc("GET "+prefix+"/healthz", ih.GetHealthz)
	mux.HandleFunc("GET "+prefix+"/readyz", ih.GetReadyz)
	mux.HandleFunc("GET "+prefix+"/version", ih.GetVersion)
	mux.HandleFunc("GET "+prefix+"/openapi.json", ih.GetOpenAPIJSON)
}

// GetStatus returns a simple health payload that can be used for lightweight diagnostics.
func (ih *InfoHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ih.respondProbe(w, r, http.StatusOK, "HEALTHY")
}

// GetHealthz implements the liveness probe recommended for Kubernetes.
func (ih *InfoHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	if _, err := ih.runChecks(r.Context(), ih.liveness); err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "liveness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ok")
}

// GetReadyz implements the readiness probe recommended for Kubernetes. The
// names of the checks that passed are listed under details.
func (ih *InfoHandler) GetReadyz(w http.ResponseWriter, r *http.Request) {
	passed, err := ih.runChecks(r.Context(), ih.readiness)
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusServiceUnavailable, err, "readiness probe failed")
		return
	}
	ih.respondProbe(w, r, http.StatusOK, "ready", passed...)
}

// GetVersion returns the structure provided by the configured InfoProvider.
func (ih *InfoHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	payload := ih.version()
	if payload == nil {
		payload = map[string]string{}
	}
	ih.Success(w, r, responder.KindDetail, payload, "")
}

// GetOpenAPIJSON streams the configured OpenAPI JSON document to the caller.
func (ih *InfoHandler) GetOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	bytes, err := ih.openapi()
	if err != nil {
		ih.HandleAPIError(w, r, http.StatusInternalServerError, err, "failed to load swagger spec")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(bytes); err != nil {
		ih.Logger().ErrorContext(r.Context(), "failed to write swagger response", "error", err)
	}
}
