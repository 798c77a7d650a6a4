package entity

import (
	"slices"
	"time"
)

// DefaultStages gilt, wenn beim Anlegen eines Projekts keine Stufen angegeben werden.
var DefaultStages = []string{"Assigned", "In Progress", "Review", "Complete"}

type ProjectEntity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatorID    string    `json:"creator_id"`
	Stages       []string  `json:"stages"`
	AdminUsers   []string  `json:"admin_users"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *ProjectEntity) HasStage(status string) bool {
	return slices.Contains(p.Stages, status)
}

func (p *ProjectEntity) IsAdmin(userID string) bool {
	return slices.Contains(p.AdminUsers, userID)
}

func (p *ProjectEntity) IsMember(userID string) bool {
	return p.IsAdmin(userID) || slices.Contains(p.Participants, userID)
}

// RoleOf liefert die Rolle des Benutzers oder "" für Nicht-Mitglieder.
func (p *ProjectEntity) RoleOf(userID string) UserRole {
	switch {
	case p.IsAdmin(userID):
		return ADMIN
	case slices.Contains(p.Participants, userID):
		return PARTICIPANT
	}
	return ""
}

type ProjectMember struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     UserRole  `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ProjectSelf struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	Role        UserRole  `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
