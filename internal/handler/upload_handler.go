package handler

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/google/uuid"

	"github.com/smkbisa/backend/internal/storage"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadHandler stores admin-uploaded images (thumbnails, photos, logos)
// and returns their public URL. The URL is then attached to whatever record
// the admin UI is editing.
type UploadHandler struct {
	storage  storage.Storage
	maxBytes int64
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(store storage.Storage, maxBytes int64) *UploadHandler {
	return &UploadHandler{storage: store, maxBytes: maxBytes}
}

// Upload handles POST /api/admin/upload. The multipart field "image" holds
// the file; the optional field "folder" groups files under a key prefix.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	ct := header.Header.Get("Content-Type")
	ext, ok := allowedContentTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "umum"
	}
	// path.Join drops any "../" the client sneaks into the folder name.
	key := path.Join(path.Base(path.Clean("/"+folder)), uuid.NewString()+ext)

	imageURL, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": imageURL})
}
