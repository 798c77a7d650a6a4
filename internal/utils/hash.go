package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// GenerateHash erzeugt einen bcrypt-Hash des Passworts.
func GenerateHash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyHash meldet (false, nil) bei falschem Passwort und einen Fehler nur bei kaputtem Hash.
func VerifyHash(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
