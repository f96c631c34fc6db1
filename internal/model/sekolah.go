package model

// IdentitasSekolah is the single-row site identity/branding record.
type IdentitasSekolah struct {
	ID          string `json:"id,omitempty"`
	NamaSekolah string `json:"nama_sekolah"`
	NPSN        string `json:"npsn"`
	Alamat      string `json:"alamat"`
	Email       string `json:"email"`
	NoTlp       string `json:"no_tlp"`
	KoordinatLS string `json:"koordinat_ls,omitempty"`
	KoordinatLB string `json:"koordinat_lb,omitempty"`
	NamaKepsek  string `json:"nama_kepsek"`
	NIPKepsek   string `json:"nip_kepsek,omitempty"`
	FotoKepsek  string `json:"foto_kepsek,omitempty"`
	LogoSekolah string `json:"logo_sekolah,omitempty"`
}

// MedsosSekolah is the single-row social-media links record.
type MedsosSekolah struct {
	ID        string `json:"id,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Whatsapp  string `json:"whatsapp,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
}
