// Package router wraps http.ServeMux with request logging, panic recovery,
// OpenAPI validation, CORS and timeouts, applied in that order. The logging
// stage tags each request with a trace id that the responder.Responder reuses,
// so recovered panics, validation failures and timeouts all leave the service
// as problem documents carrying the id found in the X-Trace-Id header.
// ExampleNew_customOptions demonstrates how to combine built-in and custom
// middlewares.
package router
