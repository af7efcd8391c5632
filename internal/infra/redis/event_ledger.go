package redis

import (
	"context"
	"time"

	"softcontrol-backoffice/internal/domain/ports/repository"
)

var _ repository.EventLedger = (*EventLedger)(nil)

// EventLedger deduplicates webhook deliveries with SET NX under a TTL key.
// The pipeline tolerates replays, so ledger faults are reported to the
// caller and treated as first-seen there.
type EventLedger struct {
	cli RedisClient
}

func NewEventLedger(cli RedisClient) *EventLedger {
	return &EventLedger{cli: cli}
}

func (l *EventLedger) FirstSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return l.cli.SetNX(ctx, "webhook:event:"+eventID, 1, ttl)
}
