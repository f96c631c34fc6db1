package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBroker broadcasts change events over redis pub/sub, one channel per
// table ("<prefix>:<table>"). Redis pub/sub preserves publish order per
// channel, which gives the per-row ordering consumers rely on.
type RedisBroker struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisBroker(rdb *redis.Client, prefix string) *RedisBroker {
	if prefix == "" {
		prefix = "realtime"
	}
	return &RedisBroker{rdb: rdb, prefix: prefix}
}

var _ Broker = (*RedisBroker)(nil)

func (b *RedisBroker) channel(table string) string {
	return b.prefix + ":" + table
}

func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel(ev.Table), payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, table string) (<-chan Event, func(), error) {
	ps := b.rdb.Subscribe(ctx, b.channel(table))

	// Wait for the subscription to be confirmed so no event published after
	// Subscribe returns can be missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, err
	}

	out := make(chan Event, 64)
	var once sync.Once
	release := func() {
		once.Do(func() { _ = ps.Close() })
	}

	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				slog.Warn("realtime: dropping malformed event", "table", table, "error", err)
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				release()
				return
			}
		}
	}()

	return out, release, nil
}
