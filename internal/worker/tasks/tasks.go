package worker_task

import "time"

const TaskStatusChangeRequested = "email:status_change_requested"

const TaskStatusChangeApproved = "email:status_change_approved"

const TaskPendingRequestsDigest = "low:pending_status_requests_digest"

type StatusChangeRequestedPayload struct {
	RequestID       string    `json:"request_id"`
	TaskID          string    `json:"task_id"`
	TaskTitle       string    `json:"task_title"`
	ProjectID       string    `json:"project_id"`
	RequestedBy     string    `json:"requested_by"`
	CurrentStatus   string    `json:"current_status"`
	RequestedStatus string    `json:"requested_status"`
	RequestedAt     time.Time `json:"requested_at"`
}

type StatusChangeApprovedPayload struct {
	RequestID   string    `json:"request_id"`
	TaskID      string    `json:"task_id"`
	TaskTitle   string    `json:"task_title"`
	ProjectID   string    `json:"project_id"`
	RequestedBy string    `json:"requested_by"`
	ApprovedBy  string    `json:"approved_by"`
	Status      string    `json:"status"`
	ApprovedAt  time.Time `json:"approved_at"`
}
