// Package log provides structured protocol capture for blelink interfaces.
//
// This package defines the Logger interface and Event types for recording
// what happens on the radio link: frames written and read, payloads handed
// to the owning stack, connection state changes and swallowed errors.
// It is separate from operational logging (slog). Components receive a
// Logger as a capability and never reach for global state, so tests can
// capture everything with a recording Logger.
//
// # Basic Usage
//
//	// Console output during development
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// Binary capture for later analysis with blelink-log
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/blelink/node.blog")
//
//	// Both
//	cfg.ProtocolLogger = log.Tee(console, file)
//
// # Event Types
//
// Events are captured at three layers:
//   - Radio: raw frames as written to or read from the characteristic (FrameEvent)
//   - Fragment: reassembled payloads and duplicate suppression (PayloadEvent)
//   - Interface: connection state changes (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// A capture file (.blog) is a sequence of CBOR records. The first record is a
// Header naming the node, its interfaces, the radio MTU and the protocol
// UUIDs; every following record is an Event. FileLogger can rotate files by
// size, and each rotated file starts with its own Header. The blelink-log
// command views, filters, exports and summarizes capture files.
package log
