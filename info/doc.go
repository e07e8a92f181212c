// Package info exposes build metadata, health probes, and the OpenAPI
// document of a service.
//
// Checks are named. WithMongoReadiness adds a "mongodb" readiness check
// around the service's *query.Connection; checks passed to
// WithLivenessChecks or WithReadinessChecks are called "probe 1",
// "probe 2" and so on. Register mounts every endpoint on a mux.
//
// See ExampleInfoHandler_full for a runnable wiring of the handler and probes.
package info
