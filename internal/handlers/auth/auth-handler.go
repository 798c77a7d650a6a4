package auth_handlers

import (
	"time"

	auth_dto "github.com/Xenn-00/stufen-meister/internal/dtos/auth-dto"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	"github.com/Xenn-00/stufen-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/stufen-meister/internal/i18n"
	auth_case "github.com/Xenn-00/stufen-meister/internal/use-cases/auth-case"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type AuthHandler struct {
	validator *validator.Validate
	service   auth_case.AuthServiceContract
	i18n      internal_i18n.Service
}

func NewAuthHandler(db *pgxpool.Pool, redis *redis.Client, i18n *internal_i18n.I18nService, paseto *utils.PasetoMaker, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		validator: handlers.NewValidator(),
		i18n:      i18n,
		service:   auth_case.NewAuthService(db, redis, paseto, tokenTTL),
	}
}

// RegisterUser legt den Benutzer an und meldet ihn direkt an.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	// 1. Anfrage parsen und validieren
	var req auth_dto.RegisterUserRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	// 2. Service aufrufen
	resp, err := h.service.RegisterUser(c.Context(), req, loginMetadata(c))
	if err != nil {
		return err
	}

	// 3. Antwort zurückgeben
	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_register", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusCreated, webResp)
}

// LoginUser behandelt die Anmeldung eines Benutzers.
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var req auth_dto.LoginUserRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.LoginUser(c.Context(), req, loginMetadata(c))
	if err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_login", nil), resp, handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

// LogoutUser beendet die Sitzung eines authentifizierten Benutzers für ein bestimmtes Gerät.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	// Die Sitzung steckt im jti, den die AuthMiddleware setzt.
	jti, ok := c.Locals("jti").(string)
	if !ok || jti == "" {
		return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	if err := h.service.LogoutUser(c.Context(), jti); err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_logout", nil), "OK", handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

// ListAllUserDevices listet alle aktiven Sitzungen des Benutzers auf.
func (h *AuthHandler) ListAllUserDevices(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	devices, err := h.service.ListAllUserDevices(c.Context(), userID)
	if err != nil {
		return err
	}

	resp := map[string]any{
		"devices": devices,
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_list_device", nil), resp, handlers.GetRequestID(c), map[string]any{"count_devices": len(devices)})
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

func (h *AuthHandler) LogoutAllDevices(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.LogoutAllDevices(c.Context(), userID); err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_logout_all", nil), "OK", handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}

// ChangePassword behält die aktuelle Sitzung, alle anderen werden beendet.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	jti, _ := c.Locals("jti").(string)

	var req auth_dto.ChangePasswordRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Context(), userID, jti, req); err != nil {
		return err
	}

	webResp := handlers.CreateResponse(h.i18n.T(handlers.GetLang(c), "response.success_change_password", nil), "OK", handlers.GetRequestID(c))
	return handlers.WriteJSON(c, fiber.StatusOK, webResp)
}
