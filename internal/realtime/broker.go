package realtime

import "context"

// Broker is the change-event channel between the write path (services publish
// after every successful mutation) and live consumers (the inbox synchronizer,
// SSE streams). Implementations must preserve per-row publish order.
type Broker interface {
	Publish(ctx context.Context, ev Event) error

	// Subscribe opens a long-lived subscription for one table. The returned
	// channel is closed when the subscription ends, either via the returned
	// release function or because the underlying transport dropped — the
	// consumer treats an unexpected close as a resync signal.
	Subscribe(ctx context.Context, table string) (<-chan Event, func(), error)
}
