package config

import (
	"fmt"
	"log/slog"
)

// validateZoneOrdering enforces spec.md §3: "zones within a day are
// strictly ascending by start time and pair-wise disjoint; reload never
// weakens this." A day not starting at 00:00:00 is accepted, with a
// warning (spec.md §3 invariants).
func validateZoneOrdering(zones []*Zone) error {
	for i := 1; i < len(zones); i++ {
		if !zones[i-1].Start.Before(zones[i].Start) {
			return fmt.Errorf("zone %q (start %s) does not strictly follow zone %q (start %s)",
				zones[i].Name, zones[i].Start, zones[i-1].Name, zones[i-1].Start)
		}
	}
	if len(zones) > 0 && zones[0].Start.Seconds() != 0 {
		slog.Warn("day schedule does not start at 00:00:00", "zone", zones[0].Name, "start", zones[0].Start)
	}
	return nil
}
