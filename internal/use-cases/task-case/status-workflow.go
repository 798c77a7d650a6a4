package task_case

import (
	"context"
	"errors"
	"fmt"
	"time"

	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	worker_task "github.com/Xenn-00/stufen-meister/internal/worker/tasks"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestStatusUpdate legt einen offenen Änderungsantrag an. Die Task selbst bleibt unverändert.
// Reihenfolge der Prüfungen: Task existiert, Aufrufer ist zugewiesen, Zielstatus ist eine Stufe des Projekts.
func (s *TaskService) RequestStatusUpdate(ctx context.Context, userID, taskID, requestedStatus string) (*task_dto.StatusChangeRequestResponse, *app_errors.AppError) {
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsAssignee(userID) {
		return nil, app_errors.NewForbiddenError("forbidden.not_task_assignee")
	}

	project, err := s.projectRepo.GetProjectByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, app_errors.NotFound) {
			return nil, app_errors.NewInvalidStatusError(fmt.Errorf("project %s not found", task.ProjectID))
		}
		return nil, err
	}
	if !project.HasStage(requestedStatus) {
		return nil, app_errors.NewInvalidStatusError(nil)
	}

	requestID, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewInternalError(idErr)
	}

	req := &entity.StatusChangeRequestEntity{
		ID:              requestID.String(),
		TaskID:          task.ID,
		ProjectID:       task.ProjectID,
		RequestedBy:     userID,
		CurrentStatus:   task.Status,
		RequestedStatus: requestedStatus,
		State:           entity.RequestPending,
		CreatedAt:       time.Now(),
	}

	if err := s.requestRepo.InsertStatusRequest(ctx, req); err != nil {
		return nil, err
	}

	if err := s.taskQueue.EnqueueStatusChangeRequested(ctx, &worker_task.StatusChangeRequestedPayload{
		RequestID:       req.ID,
		TaskID:          task.ID,
		TaskTitle:       task.Title,
		ProjectID:       task.ProjectID,
		RequestedBy:     userID,
		CurrentStatus:   req.CurrentStatus,
		RequestedStatus: req.RequestedStatus,
		RequestedAt:     req.CreatedAt,
	}); err != nil {
		log.Error().Err(err).Str("request_id", req.ID).Msg("Benachrichtigung über Statusantrag konnte nicht eingereiht werden")
	}

	return task_dto.NewStatusChangeRequestResponse(req), nil
}

// ApproveStatusChange setzt den beantragten Status in einer Transaktion: Antrag per CAS auf Approved,
// Task-Status setzen, Historie anhängen. Von zwei gleichzeitigen Genehmigungen gewinnt genau eine,
// die andere erhält InvalidState.
func (s *TaskService) ApproveStatusChange(ctx context.Context, userID, requestID string) (*task_dto.ApproveStatusChangeResponse, *app_errors.AppError) {
	req, err := s.requestRepo.GetStatusRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, app_errors.NotFound) {
			return nil, app_errors.NewInvalidStateError(fmt.Errorf("status request %s not found", requestID))
		}
		return nil, err
	}
	if req.State != entity.RequestPending {
		return nil, app_errors.NewInvalidStateError(fmt.Errorf("status request %s is %s", requestID, req.State))
	}

	project, err := s.projectRepo.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, app_errors.NotFound) {
			return nil, app_errors.NewForbiddenError("forbidden.not_project_admin")
		}
		return nil, err
	}
	if err := verifyProjectAdmin(project, userID); err != nil {
		return nil, err
	}

	// Die Stufen können sich seit dem Antrag geändert haben.
	if !project.HasStage(req.RequestedStatus) {
		return nil, app_errors.NewInvalidStatusError(nil)
	}

	approvedAt := time.Now()
	approved, err := s.applyApproval(ctx, req, userID, approvedAt)
	if err != nil {
		return nil, err
	}

	s.invalidateTask(ctx, approved.TaskID)

	if err := s.taskQueue.EnqueueStatusChangeApproved(ctx, &worker_task.StatusChangeApprovedPayload{
		RequestID:   approved.ID,
		TaskID:      approved.TaskID,
		ProjectID:   approved.ProjectID,
		RequestedBy: approved.RequestedBy,
		ApprovedBy:  userID,
		Status:      approved.RequestedStatus,
		ApprovedAt:  approvedAt,
	}); err != nil {
		log.Error().Err(err).Str("request_id", approved.ID).Msg("Benachrichtigung über Genehmigung konnte nicht eingereiht werden")
	}

	return &task_dto.ApproveStatusChangeResponse{
		RequestID:  approved.ID,
		TaskID:     approved.TaskID,
		Status:     approved.RequestedStatus,
		ApprovedBy: userID,
		ApprovedAt: approvedAt,
	}, nil
}

func (s *TaskService) applyApproval(ctx context.Context, req *entity.StatusChangeRequestEntity, adminID string, at time.Time) (*entity.StatusChangeRequestEntity, *app_errors.AppError) {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer t.Rollback(ctx)

	approved, err := s.requestRepo.ApproveStatusRequest(ctx, t, req.ID, adminID, at)
	if err != nil {
		return nil, err
	}

	status := approved.RequestedStatus
	if err := s.repo.UpdateTaskFields(ctx, t, approved.TaskID, &entity.TaskUpdate{Status: &status}, at); err != nil {
		return nil, err
	}
	if err := s.repo.AppendStatusHistory(ctx, t, approved.TaskID, status, at); err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	return approved, nil
}

func (s *TaskService) ListStatusRequests(ctx context.Context, userID, taskID string, filter task_dto.StatusRequestFilter) ([]*task_dto.StatusChangeRequestResponse, *app_errors.AppError) {
	task, project, err := s.getTaskAndProject(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := verifyTaskReader(project, task, userID); err != nil {
		return nil, err
	}

	var state *entity.RequestState
	if filter.State != nil {
		st := entity.RequestState(*filter.State)
		state = &st
	}

	requests, err := s.requestRepo.ListStatusRequestsByTask(ctx, taskID, state)
	if err != nil {
		return nil, err
	}

	resp := make([]*task_dto.StatusChangeRequestResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, task_dto.NewStatusChangeRequestResponse(&requests[i]))
	}
	return resp, nil
}
