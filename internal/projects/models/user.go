package models

// ============================================================
// User Model
// ============================================================

type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Password  string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
