package model

// Jurusan is an academic program (study major) offered by the school.
type Jurusan struct {
	ID          string `json:"id"`
	NamaJurusan string `json:"nama_jurusan"`
	Singkatan   string `json:"singkatan"`
	Deskripsi   string `json:"deskripsi,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
