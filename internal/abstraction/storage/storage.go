package storage

import (
	"context"
	"mime/multipart"

	"github.com/Xenn-00/stufen-meister/internal/entity"
)

// FileStorage legt Task-Anhänge ab. Remove auf einen nicht existierenden Pfad ist kein Fehler.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader) (*entity.TaskAttachment, error)
	Remove(ctx context.Context, storagePath string) error
}
