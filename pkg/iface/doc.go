// Package iface is the boundary between a packet-routing owner and the BLE
// link.
//
// An Interface accepts whole payloads from its owner through ProcessOutgoing,
// queues them, and hands them to a supervisor that fragments them into
// radio-sized frames. Complete, deduplicated payloads travel the other way
// through ProcessIncoming to the owner's Inbound method.
//
// Lifecycle:
//
//	ifc, err := iface.New(owner, cfg, r) // validates, starts nothing
//	err = ifc.Start(ctx)                 // online, workers running
//	ifc.ProcessOutgoing(payload)
//	ifc.Detach()                         // workers stop at their next iteration
//	ifc.Wait()
//
// Runtime radio failures never reach the owner. They are retried by the
// supervisor and show up only in debug logs and in Stats.
package iface
