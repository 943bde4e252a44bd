// Package fragment splits payloads into radio-sized frames and puts them back
// together on the receiving side.
//
// # Frame Format
//
//	┌───────────┬────────────────┬────────────────┬──────────────────┐
//	│ packet_id │ fragment_index │ fragment_count │ fragment bytes   │
//	│   1 byte  │     1 byte     │     1 byte     │ 0..mtu bytes     │
//	└───────────┴────────────────┴────────────────┴──────────────────┘
//
// No checksum is carried; integrity relies on the radio link. Frames shorter
// than the header are rejected by Decode with ErrShortFrame.
//
// # Packet Identifiers
//
// All fragments of one payload share an 8-bit packet_id derived from a
// BLAKE2s digest of the payload and the send time. The space is small, so a
// Reassembler keys partial payloads by peer address as well as packet_id.
package fragment
