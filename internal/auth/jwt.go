package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims defines the JWT payload for session tokens.
// It embeds RegisteredClaims so expiration and issuance metadata are centralized.
type Claims struct {
	AccountID   uint64 `json:"account_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens with a secret that is fixed at
// construction time. Nothing mutates the secret after startup.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces an HS256-signed token bound to the account id and display name,
// expiring ttl after issuance.
func (t *TokenIssuer) Issue(accountID uint64, displayName string) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID:   accountID,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify validates signature + expiry and returns the embedded claims.
// Expiry is the only invalidation mechanism; there is no revocation list.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
