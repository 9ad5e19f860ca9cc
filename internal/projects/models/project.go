package models

// ============================================================
// Project Model
// ============================================================

// Project is a stored house layout. Data holds the project file JSON.
type Project struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Data      []byte `json:"-"`
	UpdatedAt string `json:"updated_at"`
}
