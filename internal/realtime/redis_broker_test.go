package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/smkbisa/backend/internal/model"
)

func newTestBroker(t *testing.T) *RedisBroker {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisBroker(rdb, "realtime")
}

func receiveEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("event channel closed unexpectedly")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestRedisBroker_PublishSubscribe(t *testing.T) {
	broker := newTestBroker(t)
	ctx := context.Background()

	events, release, err := broker.Subscribe(ctx, "pesan")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}
	defer release()

	row := model.Pesan{ID: "m1", Nama: "Budi", Email: "budi@example.com", Subjek: "Tanya PPDB", Status: model.PesanStatusUnread}
	ev, err := NewInsert("pesan", row)
	if err != nil {
		t.Fatalf("NewInsert() error: %v", err)
	}
	if err := broker.Publish(ctx, ev); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	got := receiveEvent(t, events)
	if got.Type != EventInsert {
		t.Errorf("expected insert event, got %q", got.Type)
	}
	if got.Table != "pesan" {
		t.Errorf("expected table pesan, got %q", got.Table)
	}

	var decoded model.Pesan
	if err := got.DecodeNew(&decoded); err != nil {
		t.Fatalf("decode new row: %v", err)
	}
	if decoded.ID != "m1" || decoded.Nama != "Budi" {
		t.Errorf("round-tripped row mismatch: %+v", decoded)
	}
}

func TestRedisBroker_TableIsolation(t *testing.T) {
	broker := newTestBroker(t)
	ctx := context.Background()

	pesanEvents, release, err := broker.Subscribe(ctx, "pesan")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}
	defer release()

	// An event on another table must not reach the pesan subscription.
	other, err := NewInsert("berita", model.Berita{ID: "b1", Judul: "Halo"})
	if err != nil {
		t.Fatalf("NewInsert() error: %v", err)
	}
	if err := broker.Publish(ctx, other); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	mine := NewDelete("pesan", "m9")
	if err := broker.Publish(ctx, mine); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	got := receiveEvent(t, pesanEvents)
	if got.Type != EventDelete || got.OldID() != "m9" {
		t.Errorf("expected delete(m9) as first pesan event, got %+v", got)
	}
}

func TestRedisBroker_PerChannelOrdering(t *testing.T) {
	broker := newTestBroker(t)
	ctx := context.Background()

	events, release, err := broker.Subscribe(ctx, "pesan")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}
	defer release()

	first, _ := NewInsert("pesan", model.Pesan{ID: "a"})
	second, _ := NewUpdate("pesan", model.Pesan{ID: "a", Status: model.PesanStatusRead})
	third := NewDelete("pesan", "a")
	for _, ev := range []Event{first, second, third} {
		if err := broker.Publish(ctx, ev); err != nil {
			t.Fatalf("Publish() error: %v", err)
		}
	}

	want := []EventType{EventInsert, EventUpdate, EventDelete}
	for i, w := range want {
		got := receiveEvent(t, events)
		if got.Type != w {
			t.Fatalf("event %d: expected %q, got %q", i, w, got.Type)
		}
	}
}

func TestRedisBroker_ReleaseClosesChannel(t *testing.T) {
	broker := newTestBroker(t)

	events, release, err := broker.Subscribe(context.Background(), "pesan")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}
	release()
	// Double release must be safe.
	release()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed channel after release, got event")
		}
	case <-time.After(2 * time.Second):
		t.Error("channel not closed after release")
	}
}

func TestEvent_OldID(t *testing.T) {
	ev := NewDelete("pesan", "xyz")
	if ev.OldID() != "xyz" {
		t.Errorf("expected OldID xyz, got %q", ev.OldID())
	}
	if (Event{}).OldID() != "" {
		t.Error("expected empty OldID for event without Old payload")
	}
}
