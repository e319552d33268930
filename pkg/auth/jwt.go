package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const Issuer = "kormo-mela-auth"

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Phone string `json:"phone"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// TokenIssuer signs and validates the access/refresh token pair.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (ti *TokenIssuer) IssueAccess(userID int64, phone string) (string, error) {
	return ti.issue(userID, phone, ScopeAccess, ti.accessTTL)
}

func (ti *TokenIssuer) IssueRefresh(userID int64, phone string) (string, error) {
	return ti.issue(userID, phone, ScopeRefresh, ti.refreshTTL)
}

func (ti *TokenIssuer) issue(userID int64, phone, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Phone: phone,
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// ParseValidate checks signature, expiry and issuer.
func (ti *TokenIssuer) ParseValidate(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ti.secret, nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	return c, nil
}
