package status_request_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/stufen-meister/internal/abstraction/tx"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

type StatusRequestRepoContract interface {
	InsertStatusRequest(ctx context.Context, req *entity.StatusChangeRequestEntity) *app_errors.AppError
	GetStatusRequestByID(ctx context.Context, requestID string) (*entity.StatusChangeRequestEntity, *app_errors.AppError)
	ApproveStatusRequest(ctx context.Context, t tx.Tx, requestID, adminID string, at time.Time) (*entity.StatusChangeRequestEntity, *app_errors.AppError)
	ListStatusRequestsByTask(ctx context.Context, taskID string, state *entity.RequestState) ([]entity.StatusChangeRequestEntity, *app_errors.AppError)
	ListStalePendingRequests(ctx context.Context, createdBefore time.Time) ([]entity.PendingRequestDigest, *app_errors.AppError)
}
