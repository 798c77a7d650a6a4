package auth_case

import "fmt"

// SessionTracker liegt unter session:<jti>; die Auth-Middleware lässt nur Tokens mit vorhandener Session durch.
type SessionTracker struct {
	JTI       string `json:"jti"`
	UserID    string `json:"user_id"`
	Device    string `json:"device"`
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
	LoginAt   string `json:"login_at"`
}

func SessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

func UserSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}
