// Package service runs the profile scanner.
//
// A ScannerService holds an immutable snapshot of the local profile payload.
// Each peer advertisement it receives is decoded from hex, scored against the
// local payload and described, in arrival order. Results are delivered to
// registered handlers and kept in a per-session table keyed by peer instance.
//
// Evaluate runs the same pipeline synchronously for a single payload and is
// safe for concurrent use.
package service
