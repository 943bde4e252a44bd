// Package supervisor runs the radio side of a link-layer interface: it
// maintains connection state, drains the transmit queue onto the radio and
// turns received frames into payloads.
//
// # Strategies
//
// One of two strategies is chosen at construction:
//
//   - PointToPoint keeps a session open to a configured peer address. Any
//     failure closes the session and retries after a fixed delay of the
//     connection interval plus 2 seconds, indefinitely.
//   - Discovery scans for advertising peers whose name carries the protocol
//     prefix and visits each one with a short-lived session, performing at
//     most one read and one write per visit. A separate worker keeps this
//     node advertised.
//
// # Workers
//
// Workers run in an errgroup and communicate over channels:
//
//	┌──────────────────┐   frames   ┌─────────────────┐  payloads
//	│ connection/scan  │──────────▶│    dispatch     │──────────▶ Deliver
//	│ worker           │           │ (reassembly +   │
//	└──────────────────┘           │  dedup owner)   │
//	┌──────────────────┐   frames   │                 │
//	│ peripheral       │──────────▶│                 │
//	│ write handler    │           └─────────────────┘
//	└──────────────────┘
//
// Only the connection or scan worker changes State. The reassembler and the
// dedup window are owned by the dispatch worker and need no locking.
//
// # Failures
//
// Connect, read and write failures are logged at debug level and never
// returned to the caller. Stopping is cooperative: workers check the online
// flag before each iteration.
package supervisor
