package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/smkbisa/backend/internal/inbox"
	"github.com/smkbisa/backend/internal/model"
	"github.com/smkbisa/backend/internal/realtime"
	"github.com/smkbisa/backend/internal/repository"
	"github.com/smkbisa/backend/internal/service"
)

const maxIsiLength = 5000

// PesanHandler handles public contact submission and the admin inbox. Admin
// reads go through the synchronizer, never straight to the database, so every
// admin sees the same live sequence.
type PesanHandler struct {
	pesanService service.PesanService
	sync         *inbox.Synchronizer
	broker       realtime.Broker
}

// NewPesanHandler creates a PesanHandler.
func NewPesanHandler(pesanService service.PesanService, sync *inbox.Synchronizer, broker realtime.Broker) *PesanHandler {
	return &PesanHandler{pesanService: pesanService, sync: sync, broker: broker}
}

type pesanSubmitRequest struct {
	Nama   string `json:"nama" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	NoHP   string `json:"no_hp"`
	Subjek string `json:"subjek" validate:"required"`
	Isi    string `json:"isi" validate:"required"`
}

// Submit handles POST /api/pesan (public, rate limited).
func (h *PesanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req pesanSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if len([]rune(req.Isi)) > maxIsiLength {
		writeError(w, http.StatusBadRequest, "isi_too_long")
		return
	}

	p := &model.Pesan{
		Nama:   req.Nama,
		Email:  req.Email,
		NoHP:   req.NoHP,
		Subjek: req.Subjek,
		Isi:    req.Isi,
	}
	if err := h.pesanService.Submit(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ok": "true"})
}

// inboxResponse is the JSON response for GET /api/admin/pesan.
type inboxResponse struct {
	Messages    []model.Pesan `json:"messages"`
	UnreadCount int           `json:"unread_count"`
	State       inbox.State   `json:"state"`
}

// AdminList handles GET /api/admin/pesan. The payload is the synchronizer's
// current snapshot, not a fresh database read.
func (h *PesanHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, inboxResponse{
		Messages:    h.sync.Snapshot(),
		UnreadCount: h.sync.UnreadCount(),
		State:       h.sync.State(),
	})
}

// Open handles POST /api/admin/pesan/{id}/open. Opening an unread message
// issues the mark-read mutation; the list catches up via the change event.
func (h *PesanHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := h.sync.Open(r.Context(), id)
	if errors.Is(err, inbox.ErrNotPresent) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "open_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type pesanStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/pesan/{id}/status.
func (h *PesanHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req pesanStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	p, err := h.sync.SetStatus(r.Context(), id, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/pesan/{id}. Deleting an already-gone id
// succeeds; the delete event reconciles every inbox as a no-op.
func (h *PesanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sync.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

// Stream handles GET /api/admin/pesan/stream: a server-sent-events feed of
// pesan change events. The admin UI applies them the same way the
// synchronizer does; a dropped stream means missed events, so clients
// re-fetch the snapshot on reconnect.
func (h *PesanHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}

	events, release, err := h.broker.Subscribe(r.Context(), service.PesanTable)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "subscribe_failed")
		return
	}
	defer release()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				// Transport dropped; end the stream so the client reconnects
				// and re-fetches the snapshot.
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
