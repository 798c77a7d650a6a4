package project_case

import (
	"github.com/Xenn-00/stufen-meister/internal/entity"
	use_cases "github.com/Xenn-00/stufen-meister/internal/use-cases"
)

type projectMocks struct {
	repo     *use_cases.MockProjectRepo
	taskRepo *use_cases.MockTaskRepo
	userRepo *use_cases.MockUserRepo
	tx       *use_cases.MockTx
	txm      *use_cases.MockTxManager
	storage  *use_cases.MockFileStorage
}

func newTestService() (*ProjectService, *projectMocks) {
	txm, t := use_cases.NewCommittingTx()
	m := &projectMocks{
		repo:     new(use_cases.MockProjectRepo),
		taskRepo: new(use_cases.MockTaskRepo),
		userRepo: new(use_cases.MockUserRepo),
		tx:       t,
		txm:      txm,
		storage:  new(use_cases.MockFileStorage),
	}
	return &ProjectService{
		repo:      m.repo,
		taskRepo:  m.taskRepo,
		userRepo:  m.userRepo,
		txManager: m.txm,
		storage:   m.storage,
	}, m
}

func testProject() *entity.ProjectEntity {
	return &entity.ProjectEntity{
		ID:           "project-1",
		Name:         "Relaunch",
		CreatorID:    "admin-1",
		Stages:       []string{"Assigned", "In Progress", "Review", "Complete"},
		AdminUsers:   []string{"admin-1", "admin-2"},
		Participants: []string{"part-1"},
	}
}
