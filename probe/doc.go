// Package probe turns MongoDB pings and custom checks into readiness
// functions for the info endpoints. A *query.Connection satisfies
// MongoPinger directly.
package probe
