package model

import "time"

// Pengumuman is an announcement with an active-date window. Status false
// hides it regardless of the window.
type Pengumuman struct {
	ID             string     `json:"id"`
	Judul          string     `json:"judul"`
	Isi            string     `json:"isi"`
	TanggalMulai   time.Time  `json:"tanggal_mulai"`
	TanggalSelesai *time.Time `json:"tanggal_selesai,omitempty"` // nil = open-ended
	Status         bool       `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}
