package project_dto

import (
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
)

type ProjectResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatorID   string                 `json:"creator_id"`
	Stages      []string               `json:"stages"`
	Role        entity.UserRole        `json:"role,omitempty"`
	Members     []entity.ProjectMember `json:"members,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func NewProjectResponse(p *entity.ProjectEntity, role entity.UserRole, members []entity.ProjectMember) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatorID:   p.CreatorID,
		Stages:      p.Stages,
		Role:        role,
		Members:     members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type MemberResponse struct {
	ProjectID string          `json:"project_id"`
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role,omitempty"`
}

type StagesResponse struct {
	ProjectID string   `json:"project_id"`
	Stages    []string `json:"stages"`
}

type DeleteProjectResponse struct {
	ProjectID    string `json:"project_id"`
	DeletedTasks int    `json:"deleted_tasks"`
}
