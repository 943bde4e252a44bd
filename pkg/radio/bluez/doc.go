// Package bluez drives a real Bluetooth Low Energy adapter on Linux through
// BlueZ, using tinygo.org/x/bluetooth.
//
// The adapter is used in both roles at once: as a central it scans for and
// connects to peers; as a peripheral it advertises this node and hosts the
// single protocol characteristic.
package bluez
