package entity

import "time"

type StatusChangeRequestEntity struct {
	ID              string       `json:"id"`
	TaskID          string       `json:"task_id"`
	ProjectID       string       `json:"project_id"`
	RequestedBy     string       `json:"requested_by"`
	CurrentStatus   string       `json:"current_status"`
	RequestedStatus string       `json:"requested_status"`
	State           RequestState `json:"state"`
	CreatedAt       time.Time    `json:"created_at"`
	ApprovedBy      *string      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time   `json:"approved_at,omitempty"`
}

// PendingRequestDigest ist eine offene Anfrage samt Kontext für die Sammel-Erinnerung an Admins.
type PendingRequestDigest struct {
	RequestID         string    `json:"request_id"`
	ProjectID         string    `json:"project_id"`
	ProjectName       string    `json:"project_name"`
	TaskTitle         string    `json:"task_title"`
	RequestedStatus   string    `json:"requested_status"`
	RequesterUsername string    `json:"requester_username"`
	CreatedAt         time.Time `json:"created_at"`
}

type RequestState string

// Rejected existiert im Schema, wird aber von keiner Operation erzeugt.
const (
	RequestPending  RequestState = "Pending"
	RequestApproved RequestState = "Approved"
	RequestRejected RequestState = "Rejected"
)

func (s RequestState) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}
