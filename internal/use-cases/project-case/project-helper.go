package project_case

import (
	"context"
	"strings"

	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
)

func (s *ProjectService) getAdminProject(ctx context.Context, userID, projectID string) (*entity.ProjectEntity, *app_errors.AppError) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsAdmin(userID) {
		return nil, app_errors.NewForbiddenError("forbidden.not_project_admin")
	}
	return project, nil
}

// normalizeStages trimmt jede Stufe; leere Listen, leere Namen und Duplikate sind ungültig.
func normalizeStages(stages []string) ([]string, *app_errors.AppError) {
	if len(stages) == 0 {
		return nil, stageError("stages", "required", "validation.required")
	}

	seen := make(map[string]struct{}, len(stages))
	out := make([]string, 0, len(stages))
	for _, st := range stages {
		st = strings.TrimSpace(st)
		if st == "" {
			return nil, stageError("stages", "required", "validation.required")
		}
		if _, dup := seen[st]; dup {
			return nil, stageError("stages", "unique", "validation.unique")
		}
		seen[st] = struct{}{}
		out = append(out, st)
	}
	return out, nil
}

func stageError(field, reason, key string) *app_errors.AppError {
	return app_errors.NewValidationError([]app_errors.FieldError{{
		Field:      field,
		Reason:     reason,
		MessageKey: key,
	}})
}
