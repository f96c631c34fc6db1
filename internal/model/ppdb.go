package model

import "time"

// PPDB applicant statuses. No ordering is enforced between them; an
// operator may move a record from any status to any other.
const (
	PPDBStatusBaru       = "baru"
	PPDBStatusVerifikasi = "verifikasi"
	PPDBStatusDiterima   = "diterima"
	PPDBStatusDitolak    = "ditolak"
)

// PPDBPendaftar is one new-student admission submission.
type PPDBPendaftar struct {
	ID             string    `json:"id"`
	Nama           string    `json:"nama"`
	AsalSekolah    string    `json:"asal_sekolah"`
	JurusanPilihan string    `json:"jurusan_pilihan"` // FK → jurusan.id
	NoHP           string    `json:"no_hp"`
	Alamat         string    `json:"alamat,omitempty"`
	Status         string    `json:"status"` // "baru" | "verifikasi" | "diterima" | "ditolak"
	CreatedAt      time.Time `json:"created_at"`

	// NamaJurusan is joined from the jurusan table for admin listings.
	NamaJurusan string `json:"nama_jurusan,omitempty"`
}

// ValidPPDBStatus reports whether s is a member of the applicant status enum.
func ValidPPDBStatus(s string) bool {
	switch s {
	case PPDBStatusBaru, PPDBStatusVerifikasi, PPDBStatusDiterima, PPDBStatusDitolak:
		return true
	}
	return false
}
