// Package query runs a single MongoDB operation and routes its outcome to
// success, not-found, or error hooks. Hooks can be supplied per call and per
// Runner; the per-call hook always fires first. See ExampleRunner_Run for a
// complete wiring against a collection.
package query
