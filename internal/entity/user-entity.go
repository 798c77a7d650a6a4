package entity

import "time"

// UserEntity repräsentiert die Benutzerdaten in der Datenbank.
type UserEntity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCountFilter repräsentiert die Filterkriterien für die Zählung von Benutzern.
type UserCountFilter struct {
	Email    *string
	Username *string
}

type UserUpdate struct {
	Email    *string
	Username *string
	Name     *string
}

// UserContact reicht für Benachrichtigungen.
type UserContact struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type UserRole string

const (
	ADMIN       UserRole = "Admin"
	PARTICIPANT UserRole = "Participant"
)

func (u UserRole) IsValid() bool {
	switch u {
	case ADMIN, PARTICIPANT:
		return true
	}

	return false
}
