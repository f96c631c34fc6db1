package model

import "time"

// Pesan status lifecycle. The natural workflow is unread → read → replied,
// but any status may be set directly (manual correction is allowed).
const (
	PesanStatusUnread  = "unread"
	PesanStatusRead    = "read"
	PesanStatusReplied = "replied"
)

// Pesan is an inbound contact message submitted from the public site.
type Pesan struct {
	ID        string    `json:"id"`
	Nama      string    `json:"nama"`
	Email     string    `json:"email"`
	NoHP      string    `json:"no_hp,omitempty"`
	Subjek    string    `json:"subjek"`
	Isi       string    `json:"isi"`
	Status    string    `json:"status"` // "unread" | "read" | "replied"
	CreatedAt time.Time `json:"created_at"`
}

// ValidPesanStatus reports whether s is a member of the pesan status enum.
func ValidPesanStatus(s string) bool {
	switch s {
	case PesanStatusUnread, PesanStatusRead, PesanStatusReplied:
		return true
	}
	return false
}
