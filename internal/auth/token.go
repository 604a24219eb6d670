package auth

import (
	"errors"
	"fmt"
	"time"

	"hootline/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims mirrors the token issued by the hoot API: the signed-in user sits under
// "payload".
type Claims struct {
	Payload models.User `json:"payload"`
	jwt.RegisteredClaims
}

// ParseToken validates an HS256 token and returns the user it was issued for.
func ParseToken(secret []byte, tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Payload.ID == "" {
		return nil, ErrInvalidToken
	}

	user := claims.Payload
	return &user, nil
}

// IssueToken signs a token for user. A zero ttl issues a token without expiry,
// matching what the hoot API hands out.
func IssueToken(secret []byte, user models.User, ttl time.Duration) (string, error) {
	claims := &Claims{
		Payload: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
