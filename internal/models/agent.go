package models

// Agent mirrors the agent table.
type Agent struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	UserID       *int64  `json:"userID"`
	StaffID      *int64  `json:"staffID"`
	Type         string  `json:"type"`
	Email        *string `json:"email"`
	PasswordHash *string `json:"-"`
}
