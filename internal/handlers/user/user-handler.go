package user_handlers

import (
	user_dto "github.com/Xenn-00/stufen-meister/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/Xenn-00/stufen-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/stufen-meister/internal/i18n"
	user_case "github.com/Xenn-00/stufen-meister/internal/use-cases/user-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type UserHandler struct {
	validator *validator.Validate
	service   user_case.UserServiceContract
	i18n      internal_i18n.Service
}

// Geschützt mit AuthMiddleware
func NewUserHandler(db *pgxpool.Pool, redis *redis.Client, i18n *internal_i18n.I18nService) *UserHandler {
	return &UserHandler{
		validator: handlers.NewValidator(),
		service:   user_case.NewUserService(db, redis),
		i18n:      i18n,
	}
}

func (h *UserHandler) FetchUserSelfProfile(c *fiber.Ctx) error {
	// Wir benötigen keine Anfrage um Benutzerprofils zu kriegen
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UserSelfProfile(c.Context(), userID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_get_self", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *UserHandler) UpdateSelfProfile(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	var req user_dto.UpdateSelfProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}

	// Ohne ein einziges Feld gibt es nichts zu ändern.
	if req.Username == nil && req.Email == nil && req.Name == nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}

	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.UpdateSelfProfile(c.Context(), req, userID)
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_update_self", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}
