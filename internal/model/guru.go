package model

// Guru is a teacher/staff directory entry.
type Guru struct {
	ID        string `json:"id"`
	Nama      string `json:"nama"`
	NIP       string `json:"nip,omitempty"`
	Mapel     string `json:"mapel,omitempty"`
	JurusanID string `json:"jurusan_id,omitempty"` // FK → jurusan.id
	Foto      string `json:"foto,omitempty"`

	// NamaJurusan is joined from the jurusan table for listings.
	NamaJurusan string `json:"nama_jurusan,omitempty"`
}
