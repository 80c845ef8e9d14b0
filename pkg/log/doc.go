// Package log provides structured protocol capture for profile beacons.
//
// This package defines the Logger interface and Event types recording what a
// scanner saw and concluded: advertisements received or sent, match results,
// state changes and per-payload errors. It is separate from operational
// logging (slog); the capture is a machine-readable trace for debugging.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For field capture: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/beacon/scan.plog")
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(consoleLogger, fileLogger)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using the
// .plog extension. "beacon log view" and "beacon log stats" read them.
package log
