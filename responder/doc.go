// Package responder renders the JSON envelopes of a CRUD resource.
//
// Success maps an outcome Kind to a 200 body, Error maps failures to either
// "<subject> not found" (404) or a generic 500 envelope, and Handler adapts
// error-returning handlers so failures reach a single error pipeline. The
// RFC 9457 problem helpers (HandleAPIError, HandleErrors) remain available
// for endpoints that prefer problem documents. See ExampleResponder_Success
// and ExampleResponder_Handler.
package responder
