package auth_dto

import "time"

type RegisterUserResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type LoginUserResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ListAllUserDevicesResponse struct {
	SessionID string    `json:"session_id"`
	Device    string    `json:"device"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	LoginAt   time.Time `json:"login_at"`
}
