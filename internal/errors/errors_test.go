package app_errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"AssignedUsers":   "assigned_users",
		"ID":              "id",
		"ConfirmPassword": "confirm_password",
		"Stages[0]":       "stages[0]",
		"status":          "status",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnakeCase(in), in)
	}
}

func TestParseValidationError(t *testing.T) {
	type req struct {
		Title  string `validate:"required"`
		Name   string `validate:"min=3"`
		Repeat string `validate:"eqfield=Name"`
	}

	err := validator.New().Struct(req{Name: "ab", Repeat: "x"})
	details := ParseValidationError(err)
	require.Len(t, details, 3)

	assert.Equal(t, "title", details[0].Field)
	assert.Equal(t, "validation.required", details[0].MessageKey)
	assert.Equal(t, "validation.min", details[1].MessageKey)
	assert.Equal(t, "3", details[1].Params["min"])
	assert.Equal(t, "validation.eqfield", details[2].MessageKey)
	assert.Equal(t, "name", details[2].Params["field"])

	assert.Nil(t, ParseValidationError(errors.New("kein validator-fehler")))
}

func TestSentinels(t *testing.T) {
	assert.True(t, errors.Is(NewInvalidStatusError(nil), InvalidStatus))
	assert.True(t, errors.Is(NewInvalidStateError(nil), InvalidState))
	assert.True(t, errors.Is(NewNotFoundError("task_not_found"), NotFound))
	assert.True(t, errors.Is(NewForbiddenError("forbidden.not_project_admin"), Forbidden))
	assert.False(t, errors.Is(NewInvalidStatusError(nil), InvalidState))

	wrapped := fmt.Errorf("approve: %w", NewInvalidStateError(nil))
	assert.True(t, errors.Is(wrapped, InvalidState))

	assert.Equal(t, fiber.StatusUnprocessableEntity, NewInvalidStatusError(nil).Code)
	assert.Equal(t, fiber.StatusConflict, NewInvalidStateError(nil).Code)
}

func TestMapPgxError(t *testing.T) {
	notFound := MapPgxError(pgx.ErrNoRows, "task_not_found")
	assert.Equal(t, fiber.StatusNotFound, notFound.Code)
	assert.Equal(t, "task_not_found", notFound.MessageKey)

	dup := MapPgxError(&pgconn.PgError{Code: "23505"}, "task_not_found")
	assert.Equal(t, fiber.StatusConflict, dup.Code)

	internal := MapPgxError(errors.New("verbindung weg"), "task_not_found")
	assert.Equal(t, fiber.StatusInternalServerError, internal.Code)
}
