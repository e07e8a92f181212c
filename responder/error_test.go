package responder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorInvalidIDIsNotFound(t *testing.T) {
	r := newTestResponder(WithSubject("Note"))

	cases := map[string]error{
		"sentinel":        ErrInvalidID,
		"tagged":          InvalidID(errors.New("the provided hex string is not a valid ObjectID")),
		"wrapped tag":     fmt.Errorf("load note: %w", InvalidID(errors.New("bad hex"))),
		"explicit struct": &CausedError{Message: "nope", Cause: CauseInvalidID},
	}

	for name, err := range cases {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.Error(rr, httptest.NewRequest(http.MethodGet, "/notes/zzz", nil), err)

			if rr.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rr.Code)
			}
			body := decodeBody[MessageBody](t, rr)
			if body.Message != "Note not found" {
				t.Fatalf("unexpected message %q", body.Message)
			}
		})
	}
}

func TestErrorOtherwiseInternal(t *testing.T) {
	r := newTestResponder(WithSubject("Note"))
	rr := httptest.NewRecorder()

	r.Error(rr, httptest.NewRequest(http.MethodGet, "/notes", nil), NewCausedError("db_down", errors.New("connection refused")))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeBody[ErrorBody](t, rr)
	if body.Message != "Error" {
		t.Fatalf("expected message Error, got %q", body.Message)
	}
	if body.Error.Message != "connection refused" || body.Error.Cause != "db_down" {
		t.Fatalf("unexpected error detail %+v", body.Error)
	}
	if body.Error.TraceID == "" {
		t.Fatal("expected trace id")
	}
}

func TestErrorPlainError(t *testing.T) {
	r := newTestResponder()
	rr := httptest.NewRecorder()

	r.Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))

	body := decodeBody[map[string]any](t, rr)
	detail, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	if detail["message"] != "boom" {
		t.Fatalf("expected serialised message, got %v", detail)
	}
	if _, has := detail["cause"]; has {
		t.Fatalf("expected cause to be omitted, got %v", detail)
	}
}

func TestErrorNilWritesNothing(t *testing.T) {
	r := newTestResponder()
	rr := httptest.NewRecorder()

	r.Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestCausedErrorMatching(t *testing.T) {
	inner := errors.New("bad hex")
	err := fmt.Errorf("wrap: %w", InvalidID(inner))

	if !errors.Is(err, ErrInvalidID) {
		t.Fatal("expected ErrInvalidID to match")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected inner error to remain reachable")
	}
	if errors.Is(NewCausedError("other", inner), ErrInvalidID) {
		t.Fatal("different causes must not match")
	}
	if CauseOf(errors.New("plain")) != "" {
		t.Fatal("plain errors have no cause")
	}
	if InvalidID(nil) != nil {
		t.Fatal("InvalidID(nil) must be nil")
	}
}

func TestHandleErrorsUsesDefaultClassifier(t *testing.T) {
	r := newTestResponder()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no documents", err: fmt.Errorf("find: %w", mongo.ErrNoDocuments), want: http.StatusNotFound},
		{name: "invalid id", err: InvalidID(errors.New("bad")), want: http.StatusNotFound},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.HandleErrors(rr, httptest.NewRequest(http.MethodGet, "/notes/1", nil), tt.err)

			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != problemContentType {
				t.Fatalf("expected problem content type, got %q", ct)
			}
			problem := decodeBody[ProblemDetails](t, rr)
			if problem.Status != tt.want || problem.Instance != "/notes/1" || problem.TraceID == "" {
				t.Fatalf("unexpected problem %+v", problem)
			}
		})
	}
}

func TestHandleErrorsWithoutClassifier(t *testing.T) {
	r := newTestResponder(WithErrorClassifier(nil))
	rr := httptest.NewRecorder()

	r.HandleErrors(rr, httptest.NewRequest(http.MethodGet, "/", nil), InvalidID(errors.New("bad")))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without classifier, got %d", rr.Code)
	}
	problem := decodeBody[ProblemDetails](t, rr)
	if problem.Cause != CauseInvalidID {
		t.Fatalf("expected cause to be reported, got %q", problem.Cause)
	}
}

func TestErrorReusesRequestTraceID(t *testing.T) {
	r := newTestResponder()
	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req = req.WithContext(ContextWithTraceID(req.Context(), "01JTRACE"))

	rr := httptest.NewRecorder()
	r.Error(rr, req, errors.New("boom"))
	if body := decodeBody[ErrorBody](t, rr); body.Error.TraceID != "01JTRACE" {
		t.Fatalf("expected request trace id in error body, got %q", body.Error.TraceID)
	}

	rr = httptest.NewRecorder()
	r.HandleBadRequestError(rr, req, errors.New("bad body"))
	if problem := decodeBody[ProblemDetails](t, rr); problem.TraceID != "01JTRACE" {
		t.Fatalf("expected request trace id in problem, got %q", problem.TraceID)
	}
}

func TestHandleTimeoutRendersProblem(t *testing.T) {
	var logs bytes.Buffer
	r := NewResponder(WithSubject("Note"), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	rr := httptest.NewRecorder()

	r.HandleTimeout(rr, httptest.NewRequest(http.MethodGet, "/notes", nil), context.DeadlineExceeded)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != problemContentType {
		t.Fatalf("expected problem content type, got %q", ct)
	}
	problem := decodeBody[ProblemDetails](t, rr)
	if problem.Title != http.StatusText(http.StatusServiceUnavailable) || problem.Instance != "/notes" {
		t.Fatalf("unexpected problem %+v", problem)
	}
	if out := logs.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "subject=Note") {
		t.Fatalf("expected warn record with subject, got %q", out)
	}
}
