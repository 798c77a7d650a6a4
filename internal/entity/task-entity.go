package entity

import (
	"slices"
	"time"
)

type TaskEntity struct {
	ID            string               `json:"id"`
	ProjectID     string               `json:"project_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Status        string               `json:"status"`
	AssignedUsers []string             `json:"assigned_users"`
	StatusHistory []StatusHistoryEntry `json:"status_history"`
	Attachments   []TaskAttachment     `json:"attachments"`
	CreatedBy     string               `json:"created_by"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// IsAssignee meldet, ob userID in assigned_users steht.
func (t *TaskEntity) IsAssignee(userID string) bool {
	return slices.Contains(t.AssignedUsers, userID)
}

// StatusHistoryEntry ist ein Eintrag der append-only Statushistorie.
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type TaskAttachment struct {
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	StoragePath  string    `json:"storage_path"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// TaskUpdate enthält nur die Felder, die tatsächlich geändert werden sollen.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

type AssignedTask struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}
