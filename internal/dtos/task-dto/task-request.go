package task_dto

import (
	"github.com/Xenn-00/stufen-meister/internal/entity"
	"github.com/go-playground/validator/v10"
)

// CreateTaskRequest kommt als multipart/form-data (Dateien unter "files") oder als JSON.
type CreateTaskRequest struct {
	Title         string   `json:"title" form:"title" validate:"required,min=1,max=255"`
	Description   string   `json:"description" form:"description" validate:"max=5000"`
	Status        string   `json:"status,omitempty" form:"status" validate:"omitempty,max=64"`
	AssignedUsers []string `json:"assigned_users,omitempty" form:"assigned_users" validate:"omitempty,unique,dive,uuid"`
}

// UpdateTaskRequest: nil bedeutet "nicht gesendet". AssignedUsers != nil ersetzt die Zuweisung komplett.
type UpdateTaskRequest struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status        *string   `json:"status,omitempty" validate:"omitempty,min=1,max=64"`
	AssignedUsers *[]string `json:"assigned_users,omitempty"`
}

func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil && r.AssignedUsers == nil
}

type RequestStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,max=64"`
}

type TaskListFilter struct {
	Status *string `query:"status,omitempty" validate:"omitempty,max=64"`
	Limit  int     `query:"limit,omitempty" validate:"omitempty,min=1,max=100"`
	Page   int     `query:"page,omitempty" validate:"omitempty,min=1"`
}

type StatusRequestFilter struct {
	State *string `query:"state,omitempty" validate:"omitempty,requestState"`
}

type ParamTaskID struct {
	ID string `params:"task_id" validate:"required,uuid"`
}

type ParamRequestID struct {
	ID string `params:"request_id" validate:"required,uuid"`
}

func IsValidRequestState(fl validator.FieldLevel) bool {
	return entity.RequestState(fl.Field().String()).IsValid()
}
