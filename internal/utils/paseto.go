package utils

import (
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenAudience = "Stufen-meister"
	tokenIssuer   = "SM-service"
)

// PasetoMaker verarbeitet lokale PASETO-Operationen der Version 4 (symmetrisch).
type PasetoMaker struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewPasetoMaker creates instance with existing key
func NewPasetoMaker(keyHex string) (*PasetoMaker, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid symmetric key: %w", err)
	}

	return &PasetoMaker{
		symmetricKey: key,
	}, nil
}

// GenerateSymmetricKey generiert einen neuen symmetrischen V4-Schlüssel, falls keiner konfiguriert ist.
func GenerateSymmetricKey() string {
	key := paseto.NewV4SymmetricKey()
	return hex.EncodeToString(key.ExportBytes())
}

// CreateToken erstellt ein lokales V4 Token (encrypted). sessionID landet im jti-Claim.
func (m *PasetoMaker) CreateToken(userID, username, email, sessionID string, duration time.Duration) (string, error) {
	now := time.Now()
	token := paseto.NewToken()

	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetAudience(tokenAudience)
	token.SetIssuer(tokenIssuer)
	token.SetSubject(userID)
	token.SetJti(sessionID)

	if err := token.Set("username", username); err != nil {
		return "", err
	}
	if err := token.Set("email", email); err != nil {
		return "", err
	}

	return token.V4Encrypt(m.symmetricKey, nil), nil
}

type PayloadPaseto struct {
	UserID    string
	Username  string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

// VerifyToken entschlüsselt und prüft das lokale V4 Token.
func (m *PasetoMaker) VerifyToken(tokenString string) (*PayloadPaseto, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(time.Now()))

	parsed, err := parser.ParseV4Local(m.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("token decryption/verification failed: %w", err)
	}

	payload := &PayloadPaseto{}
	if payload.UserID, err = parsed.GetSubject(); err != nil {
		return nil, err
	}
	if payload.JTI, err = parsed.GetJti(); err != nil {
		return nil, err
	}
	if payload.ExpiresAt, err = parsed.GetExpiration(); err != nil {
		return nil, err
	}
	payload.Username, _ = parsed.GetString("username")
	payload.Email, _ = parsed.GetString("email")

	return payload, nil
}
