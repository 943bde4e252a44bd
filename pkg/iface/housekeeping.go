package iface

import (
	"context"
	"fmt"
	"time"
)

// housekeeping logs a traffic line every StatsInterval while traffic changes.
// It performs no radio I/O and stops when ctx is done, which Start arranges
// as soon as the supervisor returns.
func (i *Interface) housekeeping(ctx context.Context) {
	ticker := time.NewTicker(i.config.StatsInterval)
	defer ticker.Stop()

	secs := i.config.StatsInterval.Seconds()
	var prev Snapshot
	for {
		select {
		case <-ticker.C:
			if !i.online.Load() {
				return
			}
			cur := i.Stats()
			if cur.TxBytes != prev.TxBytes || cur.RxBytes != prev.RxBytes || cur.Dropped != prev.Dropped {
				i.logInfo("traffic",
					"in", formatRate(float64(cur.RxBytes-prev.RxBytes)/secs),
					"out", formatRate(float64(cur.TxBytes-prev.TxBytes)/secs),
					"queued", cur.Queued,
					"dropped", cur.Dropped-prev.Dropped,
					"state", cur.State.String(),
				)
			}
			prev = cur

		case <-ctx.Done():
			return
		}
	}
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB"}

// formatRate renders a bytes-per-second rate: "512.0 B/s", "1.5 KiB/s".
func formatRate(b float64) string {
	unit := 0
	for b >= 1024 && unit < len(byteUnits)-1 {
		b /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s/s", b, byteUnits[unit])
}
