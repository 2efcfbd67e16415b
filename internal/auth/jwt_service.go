package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued bearer token stays valid. There is
// no revocation besides expiry.
const TokenLifetime = 7 * 24 * time.Hour

// ErrInvalidToken is the single verification failure surfaced at the
// boundary; expiry and tampering deliberately collapse into it.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT payload: just the user identifier plus the
// registered time claims.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed bearer tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given signing secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Issue produces a token embedding the user identifier, valid for
// TokenLifetime from now.
func (s *JWTService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded user
// identifier.
func (s *JWTService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
