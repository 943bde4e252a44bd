// Package netradio emulates the BLE radio over a local network so nodes can
// be exercised without Bluetooth hardware.
//
// Advertising and scanning use mDNS (service type _blelink._tcp) with the
// protocol UUIDs carried in TXT records. Characteristic access runs over TCP
// using 4-byte length-prefixed messages:
//
//	request:  [op u8][body]
//	response: [status u8][body]
//
// Operations:
//   - discover: body is service(16) || characteristic(16); response body is
//     a capability byte (bit 0 read, bit 1 write)
//   - read: response body is the hosted value
//   - write: body is one link-layer frame; delivered to the Serve handler
package netradio
