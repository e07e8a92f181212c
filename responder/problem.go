package responder

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ProblemDetails aligns HTTP error responses with RFC 9457 problem documents.
type ProblemDetails struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Cause     string `json:"cause,omitempty"`
	Instance  string `json:"instance,omitempty"`
	TraceID   string `json:"traceId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// problem assembles the document for err and logs it at the level
// configured for status.
func (r *Responder) problem(req *http.Request, status int, err error, notes []string) ProblemDetails {
	meta := r.metaFor(status)
	p := ProblemDetails{
		Type:      meta.TypeURI,
		Title:     meta.Title,
		Status:    status,
		Detail:    err.Error(),
		Cause:     CauseOf(err),
		Instance:  requestInstance(req),
		TraceID:   traceIDFor(req),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	r.report(req, meta, status, err, p.TraceID, notes)
	return p
}

// report writes one log record for a failed request.
func (r *Responder) report(req *http.Request, meta StatusMetadata, status int, err error, traceID string, notes []string) {
	attrs := []any{"status", status, "error", err.Error(), "traceId", traceID}
	if r.subject != "" {
		attrs = append(attrs, "subject", r.subject)
	}
	if instance := requestInstance(req); instance != "" {
		attrs = append(attrs, "instance", instance)
	}
	if len(notes) > 0 {
		attrs = append(attrs, "logMessages", notes)
	}
	r.logger().Log(requestContext(req), meta.LogLevel, meta.LogMsg, attrs...)
}

func (r *Responder) metaFor(status int) StatusMetadata {
	var m StatusMetadata
	if r != nil {
		m = r.statuses[status]
	}
	if m.Title == "" {
		m.Title = http.StatusText(status)
	}
	if m.LogMsg == "" {
		m.LogMsg = m.Title
	}
	if m.TypeURI == "" {
		m.TypeURI = fmt.Sprintf("%s/%d", statusDocBaseURL, status)
	}
	if m.LogLevel == 0 {
		m.LogLevel = slog.LevelError
	}
	return m
}
