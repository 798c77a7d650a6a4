package task_dto

import (
	"time"

	"github.com/Xenn-00/stufen-meister/internal/dtos"
	"github.com/Xenn-00/stufen-meister/internal/entity"
)

// TaskAttachmentItem ohne storage_path; der Ablageort bleibt intern.
type TaskAttachmentItem struct {
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type TaskResponse struct {
	ID            string                      `json:"id"`
	ProjectID     string                      `json:"project_id"`
	Title         string                      `json:"title"`
	Description   string                      `json:"description"`
	Status        string                      `json:"status"`
	AssignedUsers []string                    `json:"assigned_users"`
	StatusHistory []entity.StatusHistoryEntry `json:"status_history"`
	Attachments   []TaskAttachmentItem        `json:"attachments"`
	CreatedBy     string                      `json:"created_by"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func NewTaskResponse(t *entity.TaskEntity) *TaskResponse {
	attachments := make([]TaskAttachmentItem, 0, len(t.Attachments))
	for _, a := range t.Attachments {
		attachments = append(attachments, TaskAttachmentItem{
			OriginalName: a.OriginalName,
			StoredName:   a.StoredName,
			UploadedAt:   a.UploadedAt,
		})
	}

	assigned := t.AssignedUsers
	if assigned == nil {
		assigned = []string{}
	}
	history := t.StatusHistory
	if history == nil {
		history = []entity.StatusHistoryEntry{}
	}

	return &TaskResponse{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		AssignedUsers: assigned,
		StatusHistory: history,
		Attachments:   attachments,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

type TaskListItem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	AssignedUsers []string  `json:"assigned_users"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TaskListResponse struct {
	Items []TaskListItem      `json:"items"`
	Meta  dtos.PaginationMeta `json:"meta"`
}

type StatusChangeRequestResponse struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"task_id"`
	ProjectID       string     `json:"project_id"`
	RequestedBy     string     `json:"requested_by"`
	CurrentStatus   string     `json:"current_status"`
	RequestedStatus string     `json:"requested_status"`
	State           string     `json:"state"`
	CreatedAt       time.Time  `json:"created_at"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
}

func NewStatusChangeRequestResponse(r *entity.StatusChangeRequestEntity) *StatusChangeRequestResponse {
	return &StatusChangeRequestResponse{
		ID:              r.ID,
		TaskID:          r.TaskID,
		ProjectID:       r.ProjectID,
		RequestedBy:     r.RequestedBy,
		CurrentStatus:   r.CurrentStatus,
		RequestedStatus: r.RequestedStatus,
		State:           string(r.State),
		CreatedAt:       r.CreatedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
	}
}

type ApproveStatusChangeResponse struct {
	RequestID  string    `json:"request_id"`
	TaskID     string    `json:"task_id"`
	Status     string    `json:"status"`
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}
