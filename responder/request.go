package responder

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/drblury/docweaver/jsonutil"
)

const maxRequestBodyBytes = 1 << 20

// ReadRequestBody decodes the JSON request body into v. A missing, oversized
// or malformed body is answered with a 400 problem document and false is
// returned.
func (r *Responder) ReadRequestBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if req != nil && req.Body != nil && w != nil {
		req.Body = http.MaxBytesReader(w, req.Body, maxRequestBodyBytes)
	}
	if err := decodeRequestBody(req, v); err != nil {
		r.HandleBadRequestError(w, req, err, "failed to parse request body")
		return false
	}
	return true
}

func decodeRequestBody(req *http.Request, v any) error {
	if req == nil || req.Body == nil || req.Body == http.NoBody {
		return errors.New("request body is required")
	}
	if err := jsonutil.Decode(req.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
