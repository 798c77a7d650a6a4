package task_handlers

import (
	"mime/multipart"
	"strings"

	task_dto "github.com/Xenn-00/stufen-meister/internal/dtos/task-dto"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
)

const filesField = "files"

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// multipartFiles liefert die Dateien unter "files"; ohne multipart-Body gibt es keine.
func multipartFiles(c *fiber.Ctx) ([]*multipart.FileHeader, *app_errors.AppError) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	return form.File[filesField], nil
}

// parseUpdateForm übersetzt Formularfelder in einen UpdateTaskRequest. Nur gesendete Felder werden gesetzt.
func parseUpdateForm(c *fiber.Ctx) (*task_dto.UpdateTaskRequest, *app_errors.AppError) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}

	req := &task_dto.UpdateTaskRequest{}
	if v, ok := form.Value["title"]; ok && len(v) > 0 {
		req.Title = &v[0]
	}
	if v, ok := form.Value["description"]; ok && len(v) > 0 {
		req.Description = &v[0]
	}
	if v, ok := form.Value["status"]; ok && len(v) > 0 {
		req.Status = &v[0]
	}
	if v, ok := form.Value["assigned_users"]; ok {
		users := make([]string, 0, len(v))
		for _, u := range v {
			if u = strings.TrimSpace(u); u != "" {
				users = append(users, u)
			}
		}
		req.AssignedUsers = &users
	}
	return req, nil
}
