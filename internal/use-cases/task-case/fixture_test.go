package task_case

import (
	"testing"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	use_cases "github.com/Xenn-00/stufen-meister/internal/use-cases"
)

type taskMocks struct {
	repo        *use_cases.MockTaskRepo
	requestRepo *use_cases.MockStatusRequestRepo
	projectRepo *use_cases.MockProjectRepo
	txManager   *use_cases.MockTxManager
	tx          *use_cases.MockTx
	queue       *use_cases.MockTaskQueue
	cache       *use_cases.MockCache
	storage     *use_cases.MockFileStorage
}

func newTestService() (*TaskService, *taskMocks) {
	txm, t := use_cases.NewCommittingTx()
	m := &taskMocks{
		repo:        new(use_cases.MockTaskRepo),
		requestRepo: new(use_cases.MockStatusRequestRepo),
		projectRepo: new(use_cases.MockProjectRepo),
		txManager:   txm,
		tx:          t,
		queue:       new(use_cases.MockTaskQueue),
		cache:       &use_cases.MockCache{},
		storage:     new(use_cases.MockFileStorage),
	}

	return &TaskService{
		repo:        m.repo,
		requestRepo: m.requestRepo,
		projectRepo: m.projectRepo,
		txManager:   m.txManager,
		taskQueue:   m.queue,
		cache:       m.cache,
		storage:     m.storage,
		cacheTTL:    time.Minute,
	}, m
}

func (m *taskMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.repo.AssertExpectations(t)
	m.requestRepo.AssertExpectations(t)
	m.projectRepo.AssertExpectations(t)
	m.queue.AssertExpectations(t)
	m.storage.AssertExpectations(t)
}

// Projekt mit admin-1 als Admin und part-1, part-2 als Teilnehmer.
func testProject() *entity.ProjectEntity {
	return &entity.ProjectEntity{
		ID:           "project-1",
		Name:         "Relaunch",
		CreatorID:    "admin-1",
		Stages:       []string{"Assigned", "In Progress", "Review", "Complete"},
		AdminUsers:   []string{"admin-1"},
		Participants: []string{"part-1", "part-2"},
	}
}

func testTask() *entity.TaskEntity {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &entity.TaskEntity{
		ID:            "task-1",
		ProjectID:     "project-1",
		Title:         "Landing page",
		Status:        "Assigned",
		AssignedUsers: []string{"part-1"},
		StatusHistory: []entity.StatusHistoryEntry{{Status: "Assigned", Timestamp: created}},
		CreatedBy:     "admin-1",
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func pendingRequest() *entity.StatusChangeRequestEntity {
	return &entity.StatusChangeRequestEntity{
		ID:              "req-1",
		TaskID:          "task-1",
		ProjectID:       "project-1",
		RequestedBy:     "part-1",
		CurrentStatus:   "Assigned",
		RequestedStatus: "In Progress",
		State:           entity.RequestPending,
		CreatedAt:       time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
	}
}

func strPtr(s string) *string { return &s }
