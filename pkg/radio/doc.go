// Package radio defines the capability the link layer needs from a
// Bluetooth Low Energy stack.
//
// The link layer never imports a BLE library directly. A Radio is injected at
// construction and provides:
//   - Central role: connect to a peer and resolve the protocol characteristic
//   - Discovery: scan for advertising peers and announce this node
//   - Peripheral role: host the protocol characteristic and receive writes
//
// # Protocol Identification
//
// Compatible nodes recognise each other by a fixed service/characteristic
// UUID pair and an advertised name starting with NamePrefix.
//
// # Backends
//
//   - bluez: BlueZ on Linux via tinygo.org/x/bluetooth
//   - netradio: mDNS discovery with TCP characteristic access, for bench work
//   - memradio: in-process medium for tests
package radio
