package model

import "time"

// Galeri is one photo gallery entry.
type Galeri struct {
	ID        string    `json:"id"`
	Judul     string    `json:"judul"`
	Deskripsi string    `json:"deskripsi,omitempty"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
