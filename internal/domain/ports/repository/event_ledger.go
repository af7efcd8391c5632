package repository

import (
	"context"
	"time"
)

// EventLedger deduplicates inbound webhook deliveries by provider event id.
// FirstSeen returns true when this process is the first to observe the id
// within the retention window. Implementations must treat their own faults
// as "first seen" so a ledger outage never blocks reconciliation.
type EventLedger interface {
	FirstSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}
