package session

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrRestoreFailed means a persisted credential existed but could not be
// turned into a session; the host should show the login screen.
var ErrRestoreFailed = errors.New("session restore failed")

// tokenExpired decodes the access token's claims without verifying the
// signature (the client holds no key; the server is the authority) and
// reports whether the expiry has passed.
func tokenExpired(token string) (bool, error) {
	claims := &jwt.StandardClaims{}
	parser := &jwt.Parser{}

	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return false, err
	}

	if claims.ExpiresAt == 0 {
		return false, nil
	}

	return time.Now().Unix() >= claims.ExpiresAt, nil
}
