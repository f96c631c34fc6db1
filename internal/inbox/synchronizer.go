package inbox

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/realtime"
)

// State is the synchronizer lifecycle state.
type State string

const (
	StateInitializing State = "initializing"
	StateSynchronized State = "synchronized"
	StateFailed       State = "failed"
	StateClosed       State = "closed"
)

// ErrClosed is returned by operations on a synchronizer after Close.
var ErrClosed = errors.New("inbox: synchronizer closed")

// ErrNotPresent is returned by Open when the id is not in the local sequence.
var ErrNotPresent = errors.New("inbox: message not present")

// Notice is an out-of-band event surfaced to the UI layer, e.g. "the message
// you are viewing was deleted by someone else".
type Notice struct {
	Reason  string `json:"reason"`
	PesanID string `json:"pesan_id"`
}

// Notice reasons.
const (
	NoticeSelectedDeleted = "selected_deleted"
	NoticeNewMessage      = "new_message"
)

// Gateway is the slice of the pesan gateway the synchronizer needs. It is
// satisfied by service.PesanService.
type Gateway interface {
	List(ctx context.Context) ([]model.Pesan, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Pesan, error)
	Delete(ctx context.Context, id string) error
}

// Synchronizer mirrors the pesan table into an in-memory, newest-first
// sequence, kept live by the realtime broker. It is the single writer of that
// sequence: callers read snapshots and issue mutations through it, and the
// list only changes when the resulting change event arrives. That discipline
// keeps the list and any open detail view from ever disagreeing.
type Synchronizer struct {
	gateway Gateway
	broker  realtime.Broker

	mu       sync.Mutex
	state    State
	items    []model.Pesan
	selected *model.Pesan
	pending  []realtime.Event // events buffered while the initial fetch is in flight
	notices  chan Notice
	release  func()
	// gen invalidates the apply loop of a previous Start after Close/restart,
	// so a stale loop can never mutate current state.
	gen int
}

// NewSynchronizer creates a synchronizer in the Initializing state. Call
// Start to perform the initial fetch and open the subscription.
func NewSynchronizer(gateway Gateway, broker realtime.Broker) *Synchronizer {
	return &Synchronizer{
		gateway: gateway,
		broker:  broker,
		state:   StateInitializing,
		notices: make(chan Notice, 16),
	}
}

// Start opens the subscription, performs the full fetch and transitions to
// Synchronized. On fetch or subscribe failure the state becomes Failed and
// the error is returned; calling Start again retries. The subscription is
// opened before the fetch so no event emitted during the fetch is lost;
// events that race the fetch are buffered and replayed onto the snapshot.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = StateInitializing
	s.pending = nil
	s.gen++
	gen := s.gen
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.mu.Unlock()

	events, release, err := s.broker.Subscribe(ctx, "pesan")
	if err != nil {
		s.fail(gen)
		return err
	}

	s.mu.Lock()
	if s.state == StateClosed || gen != s.gen {
		s.mu.Unlock()
		release()
		return ErrClosed
	}
	s.release = release
	s.mu.Unlock()

	go s.loop(ctx, gen, events)

	snapshot, err := s.gateway.List(ctx)
	if err != nil {
		// Invalidate the apply loop before releasing, so it reads the channel
		// close as teardown, not as a transport drop to resynchronize from.
		// Failed is a resting state: only a manual Start leaves it.
		s.mu.Lock()
		if s.state != StateClosed && gen == s.gen {
			s.gen++
			s.state = StateFailed
			s.release = nil
		}
		s.mu.Unlock()
		release()
		return err
	}

	s.install(gen, snapshot)
	return nil
}

// fail moves to Failed unless this Start has been superseded.
func (s *Synchronizer) fail(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed || gen != s.gen {
		return
	}
	s.state = StateFailed
}

// install replaces the sequence with the fetched snapshot, replays events
// buffered during the fetch and enters Synchronized.
func (s *Synchronizer) install(gen int, snapshot []model.Pesan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed || gen != s.gen {
		return
	}

	items := make([]model.Pesan, len(snapshot))
	copy(items, snapshot)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	s.items = items

	// Re-bind the open detail view to the fresh snapshot (resync may have
	// happened while an item was open).
	if s.selected != nil {
		if idx := s.indexLocked(s.selected.ID); idx >= 0 {
			row := s.items[idx]
			s.selected = &row
		} else {
			id := s.selected.ID
			s.selected = nil
			s.notifyLocked(Notice{Reason: NoticeSelectedDeleted, PesanID: id})
		}
	}

	for _, ev := range s.pending {
		s.applyLocked(ev)
	}
	s.pending = nil
	s.state = StateSynchronized
}

// loop applies subscription events until the channel closes. An unexpected
// close while Synchronized means the transport dropped: resynchronize with a
// fresh subscription and a full re-fetch, since missed events are otherwise
// unrecoverable.
func (s *Synchronizer) loop(ctx context.Context, gen int, events <-chan realtime.Event) {
	for ev := range events {
		s.mu.Lock()
		if s.state == StateClosed || gen != s.gen {
			s.mu.Unlock()
			return
		}
		if s.state == StateInitializing {
			s.pending = append(s.pending, ev)
			s.mu.Unlock()
			continue
		}
		s.applyLocked(ev)
		s.mu.Unlock()
	}

	s.mu.Lock()
	if s.state == StateClosed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	slog.Warn("inbox: subscription interrupted, resynchronizing")
	if err := s.Start(ctx); err != nil && !errors.Is(err, ErrClosed) {
		slog.Error("inbox: resynchronization failed", "error", err)
	}
}

// applyLocked applies one change event to the sequence. Must hold s.mu.
// Application is idempotent: duplicate delivery of any event is harmless.
func (s *Synchronizer) applyLocked(ev realtime.Event) {
	switch ev.Type {
	case realtime.EventInsert, realtime.EventUpdate:
		var row model.Pesan
		if err := ev.DecodeNew(&row); err != nil || row.ID == "" {
			slog.Warn("inbox: dropping malformed event", "type", ev.Type, "error", err)
			return
		}
		if idx := s.indexLocked(row.ID); idx >= 0 {
			// In-place replace preserves position; the list is never
			// re-sorted on update.
			s.items[idx] = row
		} else {
			// Unknown id: treat update as an upsert (it raced the initial
			// fetch) and insert as newest-first prepend.
			s.items = append([]model.Pesan{row}, s.items...)
			if ev.Type == realtime.EventInsert {
				s.notifyLocked(Notice{Reason: NoticeNewMessage, PesanID: row.ID})
			}
		}
		// The open detail view is replaced in the same critical section as
		// the list entry, so no reader observes one without the other.
		if s.selected != nil && s.selected.ID == row.ID {
			s.selected = &row
		}

	case realtime.EventDelete:
		id := ev.OldID()
		if id == "" {
			return
		}
		if idx := s.indexLocked(id); idx >= 0 {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
		}
		if s.selected != nil && s.selected.ID == id {
			s.selected = nil
			s.notifyLocked(Notice{Reason: NoticeSelectedDeleted, PesanID: id})
		}
	}
}

func (s *Synchronizer) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Synchronizer) notifyLocked(n Notice) {
	select {
	case s.notices <- n:
	default:
		// A slow consumer drops notices rather than blocking the apply path.
	}
}

// State returns the current lifecycle state.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the current sequence, newest first.
func (s *Synchronizer) Snapshot() []model.Pesan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Pesan, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount recomputes the number of unread messages from the sequence.
// It is never cached, so it cannot drift from the list.
func (s *Synchronizer) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range s.items {
		if s.items[i].Status == model.PesanStatusUnread {
			n++
		}
	}
	return n
}

// Selected returns the currently open message, if any.
func (s *Synchronizer) Selected() (model.Pesan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.Pesan{}, false
	}
	return *s.selected, true
}

// Notices delivers out-of-band notifications for the UI layer.
func (s *Synchronizer) Notices() <-chan Notice {
	return s.notices
}

// Open selects a message for viewing. Opening an unread message issues the
// mark-read mutation through the gateway; the resulting update event — not a
// local patch — is what changes the list, so the event stream and the list
// can never disagree about final state.
func (s *Synchronizer) Open(ctx context.Context, id string) (model.Pesan, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return model.Pesan{}, ErrClosed
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Pesan{}, ErrNotPresent
	}
	row := s.items[idx]
	s.selected = &row
	s.mu.Unlock()

	if row.Status == model.PesanStatusUnread {
		if _, err := s.gateway.UpdateStatus(ctx, id, model.PesanStatusRead); err != nil {
			return row, err
		}
	}
	return row, nil
}

// CloseDetail clears the open detail selection.
func (s *Synchronizer) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// SetStatus changes a message's status through the gateway. The list is
// updated by the resulting event, not here.
func (s *Synchronizer) SetStatus(ctx context.Context, id, status string) (*model.Pesan, error) {
	return s.gateway.UpdateStatus(ctx, id, status)
}

// Delete removes a message through the gateway. The open detail view is
// closed pre-emptively so the UI does not lag behind the confirmed deletion;
// the list itself shrinks when the delete event arrives, and applying that
// event after this optimistic close is a no-op for the detail state.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()
	return nil
}

// Close tears the synchronizer down: the subscription is released and no
// event or in-flight fetch result mutates state afterwards. Close is
// idempotent.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.gen++
	release := s.release
	s.release = nil
	close(s.notices)
	s.mu.Unlock()

	if release != nil {
		release()
	}
}
