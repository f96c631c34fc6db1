package inbox

import (
	"context"
	"errors"
	"sync"

	"github.com/smkbisa/backend/internal/model"
)

// ErrUnknownStatus is returned when a status change names a value outside the
// admission-record enumeration.
var ErrUnknownStatus = errors.New("inbox: unknown admission status")

// AdmissionGateway is the slice of the PPDB gateway the controller needs. It
// is satisfied by service.PPDBService.
type AdmissionGateway interface {
	List(ctx context.Context) ([]model.PPDBPendaftar, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.PPDBPendaftar, error)
	Delete(ctx context.Context, id string) error
}

// StatusController governs admission-record status changes: the new status is
// applied to the local record optimistically for immediate feedback, then
// confirmed remotely. On remote failure the local record rolls back to its
// exact prior value — local state never rests on a value that was neither
// confirmed remotely nor the original.
//
// No realtime channel exists for admission records, so the call result (not
// an event stream) is the source of truth after a successful change.
type StatusController struct {
	gateway AdmissionGateway

	mu      sync.Mutex
	records []model.PPDBPendaftar
}

// NewStatusController creates a controller with an empty local list; call
// Load to populate it.
func NewStatusController(gateway AdmissionGateway) *StatusController {
	return &StatusController{gateway: gateway}
}

// Load fetches the full admission list (newest first) into local state.
func (c *StatusController) Load(ctx context.Context) error {
	records, err := c.gateway.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the local admission list.
func (c *StatusController) Snapshot() []model.PPDBPendaftar {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.PPDBPendaftar, len(c.records))
	copy(out, c.records)
	return out
}

func (c *StatusController) indexLocked(id string) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}

// SetStatus applies newStatus optimistically, confirms it remotely, and
// reconciles. Any member of the enum may be set — the workflow imposes no
// transition graph, so operators can correct mistakes freely.
func (c *StatusController) SetStatus(ctx context.Context, id, newStatus string) (*model.PPDBPendaftar, error) {
	if !model.ValidPPDBStatus(newStatus) {
		return nil, ErrUnknownStatus
	}

	// Optimistic phase: remember the prior value, then apply locally.
	c.mu.Lock()
	idx := c.indexLocked(id)
	var prev string
	applied := false
	if idx >= 0 {
		prev = c.records[idx].Status
		c.records[idx].Status = newStatus
		applied = true
	}
	c.mu.Unlock()

	row, err := c.gateway.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if applied {
			// Roll back to the exact prior value. Index is re-resolved in
			// case the list was reloaded while the call was in flight.
			c.mu.Lock()
			if idx := c.indexLocked(id); idx >= 0 && c.records[idx].Status == newStatus {
				c.records[idx].Status = prev
			}
			c.mu.Unlock()
		}
		return nil, err
	}

	// Confirmed: the returned row becomes the source of truth. The joined
	// program name is not part of the update result, so keep the local one.
	c.mu.Lock()
	if idx := c.indexLocked(id); idx >= 0 {
		if row.NamaJurusan == "" {
			row.NamaJurusan = c.records[idx].NamaJurusan
		}
		c.records[idx] = *row
	}
	c.mu.Unlock()
	return row, nil
}

// Delete removes an admission record remotely, then locally on success.
func (c *StatusController) Delete(ctx context.Context, id string) error {
	if err := c.gateway.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	if idx := c.indexLocked(id); idx >= 0 {
		c.records = append(c.records[:idx], c.records[idx+1:]...)
	}
	c.mu.Unlock()
	return nil
}
