package auth_case

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	auth_dto "github.com/Xenn-00/stufen-meister/internal/dtos/auth-dto"
	"github.com/Xenn-00/stufen-meister/internal/entity"
	app_errors "github.com/Xenn-00/stufen-meister/internal/errors"
	auth_repo "github.com/Xenn-00/stufen-meister/internal/repo/auth-repo"
	user_repo "github.com/Xenn-00/stufen-meister/internal/repo/user-repo"
	"github.com/Xenn-00/stufen-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	redis    *redis.Client
	paseto   *utils.PasetoMaker
	repo     auth_repo.AuthRepoContract
	userRepo user_repo.UserRepoContract
	tokenTTL time.Duration
}

func NewAuthService(db *pgxpool.Pool, redis *redis.Client, paseto *utils.PasetoMaker, tokenTTL time.Duration) AuthServiceContract {
	return &AuthService{
		repo:     auth_repo.NewAuthRepo(db),
		userRepo: user_repo.NewUserRepo(db),
		redis:    redis,
		paseto:   paseto,
		tokenTTL: tokenTTL,
	}
}

func unauthorized(err error) *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", err)
}

// RegisterUser registriert einen neuen Benutzer und meldet ihn direkt an.
func (s *AuthService) RegisterUser(ctx context.Context, req auth_dto.RegisterUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.RegisterUserResponse, *app_errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	count, err := s.repo.CountUsers(ctx, entity.UserCountFilter{
		Email:    &email,
		Username: &req.Username,
	})
	if err != nil {
		return nil, err
	}

	if count > 0 {
		log.Debug().Str("username", req.Username).Msg("Benutzer existiert bereits")
		return nil, app_errors.NewAppError(fiber.StatusConflict, app_errors.ErrConflict, "conflict", nil)
	}

	hashed, hashErr := utils.GenerateHash(req.Password)
	if hashErr != nil {
		log.Error().Err(hashErr).Msg("Fehler beim Erzeugen des Passwort-Hashes")
		return nil, app_errors.NewInternalError(hashErr)
	}

	idUser, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewInternalError(idErr)
	}

	now := time.Now()
	newUser := entity.UserEntity{
		ID:           idUser.String(),
		Email:        email,
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	newUserID, err := s.repo.SaveUsers(ctx, newUser)
	if err != nil {
		return nil, err
	}
	newUser.ID = newUserID

	token, _, err := s.openSession(ctx, &newUser, loginMeta)
	if err != nil {
		return nil, err
	}

	return &auth_dto.RegisterUserResponse{
		UserID: newUserID,
		Token:  token,
	}, nil
}

// LoginUser authentifiziert per E-Mail oder Benutzername und legt eine Session in Redis ab.
// Unbekannte Benutzer und falsche Passwörter ergeben dieselbe Antwort.
func (s *AuthService) LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.LoginUserResponse, *app_errors.AppError) {
	identifier := strings.TrimSpace(req.Identifier)

	var user *entity.UserEntity
	var err *app_errors.AppError
	if emailRegex.MatchString(identifier) {
		user, err = s.repo.FindByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.repo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, app_errors.NotFound) {
			return nil, unauthorized(err.Err)
		}
		return nil, err
	}

	isValid, verifyErr := utils.VerifyHash(user.PasswordHash, req.Password)
	if verifyErr != nil {
		log.Error().Err(verifyErr).Str("user_id", user.ID).Msg("Passwort-Hash konnte nicht geprüft werden")
	}
	if !isValid {
		return nil, unauthorized(verifyErr)
	}

	if !user.IsActive {
		return nil, app_errors.NewForbiddenError("auth.user_inactive")
	}

	token, expiresAt, err := s.openSession(ctx, user, loginMeta)
	if err != nil {
		return nil, err
	}

	return &auth_dto.LoginUserResponse{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// openSession erzeugt Token und Session. Session und Token laufen gleichzeitig ab.
func (s *AuthService) openSession(ctx context.Context, user *entity.UserEntity, loginMeta auth_dto.LoginMetadata) (string, time.Time, *app_errors.AppError) {
	sessionID, idErr := uuid.NewV7()
	if idErr != nil {
		return "", time.Time{}, app_errors.NewInternalError(idErr)
	}

	token, pasetoErr := s.paseto.CreateToken(user.ID, user.Username, user.Email, sessionID.String(), s.tokenTTL)
	if pasetoErr != nil {
		log.Error().Err(pasetoErr).Msg("Fehler beim Erstellen der Paseto-Token")
		return "", time.Time{}, app_errors.NewInternalError(pasetoErr)
	}

	if loginMeta.Device == "" {
		loginMeta.Device = "Unknown Device"
	}

	now := time.Now()
	session := &SessionTracker{
		JTI:       sessionID.String(),
		UserID:    user.ID,
		Device:    loginMeta.Device,
		UserAgent: loginMeta.UserAgent,
		IP:        loginMeta.IP,
		LoginAt:   now.Format(time.RFC3339),
	}
	if err := utils.SetCacheData(ctx, s.redis, SessionKey(session.JTI), session, s.tokenTTL); err != nil {
		return "", time.Time{}, err
	}
	if err := s.redis.SAdd(ctx, UserSessionsKey(user.ID), session.JTI).Err(); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Session konnte nicht registriert werden")
		return "", time.Time{}, app_errors.NewInternalError(err)
	}

	return token, now.Add(s.tokenTTL), nil
}

// LogoutUser beendet die Session sessionID.
func (s *AuthService) LogoutUser(ctx context.Context, sessionID string) *app_errors.AppError {
	sessionKey := SessionKey(sessionID)

	session, err := utils.GetCacheData[SessionTracker](ctx, s.redis, sessionKey)
	if err != nil || session == nil {
		// Session bereits beendet / ungültig
		return unauthorized(nil)
	}

	if err := utils.DeleteCacheData(ctx, s.redis, sessionKey); err != nil {
		log.Error().Err(err).Msg("Fehler beim Löschen der Cache")
		return app_errors.NewInternalError(err)
	}

	if err := s.redis.SRem(ctx, UserSessionsKey(session.UserID), session.JTI).Err(); err != nil {
		log.Error().Err(err).Msg("Fehler beim Löschen der Cache")
		return app_errors.NewInternalError(err)
	}

	return nil
}

// ListAllUserDevices ruft alle aktiven Sessions eines Benutzers ab. Abgelaufene werden aus dem Set entfernt.
func (s *AuthService) ListAllUserDevices(ctx context.Context, userID string) ([]auth_dto.ListAllUserDevicesResponse, *app_errors.AppError) {
	key := UserSessionsKey(userID)
	jtis, err := s.redis.SMembers(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Msg("Fehler beim Abrufen der Redis-SMembers")
		return nil, app_errors.NewInternalError(err)
	}

	devices := make([]auth_dto.ListAllUserDevicesResponse, 0, len(jtis))
	for _, jti := range jtis {
		data, cacheErr := utils.GetCacheData[SessionTracker](ctx, s.redis, SessionKey(jti))
		if cacheErr != nil {
			return nil, cacheErr
		}
		if data == nil {
			s.redis.SRem(ctx, key, jti)
			continue
		}

		var loginAt time.Time
		if data.LoginAt != "" {
			if t, parseErr := time.Parse(time.RFC3339, data.LoginAt); parseErr == nil {
				loginAt = t
			} else {
				log.Warn().Err(parseErr).Str("session_id", jti).Msg("Ungültiges login_at-Format")
			}
		}

		devices = append(devices, auth_dto.ListAllUserDevicesResponse{
			SessionID: jti,
			Device:    data.Device,
			IP:        data.IP,
			UserAgent: data.UserAgent,
			LoginAt:   loginAt,
		})
	}

	return devices, nil
}

// LogoutAllDevices löscht alle Sessions eines Benutzers.
func (s *AuthService) LogoutAllDevices(ctx context.Context, userID string) *app_errors.AppError {
	return s.dropSessions(ctx, userID, "")
}

// ChangePassword prüft das aktuelle Passwort und beendet danach alle anderen Sessions.
func (s *AuthService) ChangePassword(ctx context.Context, userID, sessionID string, req auth_dto.ChangePasswordRequest) *app_errors.AppError {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	ok, verifyErr := utils.VerifyHash(user.PasswordHash, req.CurrentPassword)
	if verifyErr != nil {
		return app_errors.NewInternalError(verifyErr)
	}
	if !ok {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "auth.wrong_password", nil)
	}
	if req.CurrentPassword == req.NewPassword {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "auth.password_unchanged", nil)
	}

	hashed, hashErr := utils.GenerateHash(req.NewPassword)
	if hashErr != nil {
		return app_errors.NewInternalError(hashErr)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed, time.Now()); err != nil {
		return err
	}

	return s.dropSessions(ctx, userID, sessionID)
}

// dropSessions löscht alle Sessions von userID außer keep.
func (s *AuthService) dropSessions(ctx context.Context, userID, keep string) *app_errors.AppError {
	key := UserSessionsKey(userID)
	jtis, err := s.redis.SMembers(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Msg("Fehler beim Abrufen der Redis-SMembers")
		return app_errors.NewInternalError(err)
	}

	pipe := s.redis.TxPipeline()
	for _, jti := range jtis {
		if jti == keep {
			continue
		}
		pipe.Del(ctx, SessionKey(jti))
		pipe.SRem(ctx, key, jti)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Fehler beim Löschen der Sessions")
		return app_errors.NewInternalError(err)
	}

	return nil
}
