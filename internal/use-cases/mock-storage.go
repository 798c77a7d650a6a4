package use_cases

import (
	"context"
	"mime/multipart"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/storage"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	"github.com/stretchr/testify/mock"
)

var _ storage.FileStorage = (*MockFileStorage)(nil)

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, file *multipart.FileHeader) (*entity.TaskAttachment, error) {
	args := m.Called(ctx, file)
	return ret[*entity.TaskAttachment](args, 0), args.Error(1)
}

func (m *MockFileStorage) Remove(ctx context.Context, storagePath string) error {
	args := m.Called(ctx, storagePath)
	return args.Error(0)
}
