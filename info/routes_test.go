package info

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drblury/docweaver/query"
	"github.com/drblury/docweaver/responder"
)

func quietResponder() *responder.Responder {
	return responder.NewResponder(responder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestInfoHandler_GetStatus(t *testing.T) {
	handler := NewInfoHandler()
	rr := httptest.NewRecorder()

	handler.GetStatus(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if payload := decodeProbePayload(t, rr.Body.Bytes()); payload.Status != "HEALTHY" {
		t.Fatalf("expected HEALTHY, got %s", payload.Status)
	}
}

func TestInfoHandler_GetReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		ok := func(context.Context) error { return nil }
		handler := NewInfoHandler(
			WithReadinessChecks(ok),
			WithReadinessCheck("cache", ok),
		)
		rr := httptest.NewRecorder()
		handler.GetReadyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		payload := decodeProbePayload(t, rr.Body.Bytes())
		if payload.Status != "ready" {
			t.Fatalf("expected ready, got %s", payload.Status)
		}
		if strings.Join(payload.Details, ",") != "probe 1,cache" {
			t.Fatalf("expected passed checks in details, got %v", payload.Details)
		}
	})

	t.Run("mongo not connected", func(t *testing.T) {
		handler := NewInfoHandler(
			WithInfoResponder(quietResponder()),
			WithMongoReadiness(query.NewConnection()),
		)
		rr := httptest.NewRecorder()
		handler.GetReadyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rr.Code)
		}
		problem := decodeProblemDetails(t, rr.Body.Bytes())
		if !strings.HasPrefix(problem.Detail, "mongodb failed") || !strings.Contains(problem.Detail, "not connected") {
			t.Fatalf("unexpected detail %q", problem.Detail)
		}
	})
}

func TestInfoHandler_GetHealthz(t *testing.T) {
	handler := NewInfoHandler(
		WithInfoResponder(quietResponder()),
		WithLivenessChecks(func(context.Context) error { return errors.New("wedged") }),
	)
	rr := httptest.NewRecorder()
	handler.GetHealthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if problem := decodeProblemDetails(t, rr.Body.Bytes()); problem.Status != http.StatusServiceUnavailable {
		t.Fatalf("unexpected problem %+v", problem)
	}
}

func TestInfoHandler_GetVersion(t *testing.T) {
	t.Run("nil payload falls back to empty object", func(t *testing.T) {
		handler := NewInfoHandler(WithInfoProvider(func() any { return nil }))
		rr := httptest.NewRecorder()
		handler.GetVersion(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

		if got := strings.TrimSpace(rr.Body.String()); got != "{}" {
			t.Fatalf("expected empty object, got %s", got)
		}
	})
}

func TestInfoHandler_GetOpenAPIJSON(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		handler := NewInfoHandler(WithInfoResponder(quietResponder()))
		rr := httptest.NewRecorder()
		handler.GetOpenAPIJSON(rr, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rr.Code)
		}
	})

	t.Run("configured", func(t *testing.T) {
		doc := `{"openapi":"3.0.3"}`
		handler := NewInfoHandler(WithSwaggerProvider(func() ([]byte, error) { return []byte(doc), nil }))
		rr := httptest.NewRecorder()
		handler.GetOpenAPIJSON(rr, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

		if rr.Code != http.StatusOK || rr.Body.String() != doc {
			t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
		}
	})
}

func TestInfoHandler_Register(t *testing.T) {
	mux := http.NewServeMux()
	NewInfoHandler().Register(mux, "/info")

	for _, path := range []string{"/info/status", "/info/healthz", "/info/readyz", "/info/version"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}
}
