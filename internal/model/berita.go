package model

import "time"

// Berita publication statuses.
const (
	BeritaStatusDraft   = "draft"
	BeritaStatusPublish = "publish"
)

// Berita is a news article. Only "publish" articles appear on the public site.
type Berita struct {
	ID        string    `json:"id"`
	Judul     string    `json:"judul"`
	Slug      string    `json:"slug"`
	Konten    string    `json:"konten"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Status    string    `json:"status"` // "draft" | "publish"
	Penulis   string    `json:"penulis,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
