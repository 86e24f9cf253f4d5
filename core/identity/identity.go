package identity

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser      = "user"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// ErrInvalidToken is returned when a bearer token cannot be verified.
var ErrInvalidToken = errors.New("invalid identity token")

// Config holds configuration for resolving caller identities.
type Config struct {
	// JWTSecret is the HS256 secret shared with the authentication service.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Issuer, when set, must match the token's iss claim.
	Issuer string `mapstructure:"issuer" default:""`
}

// Identity is the resolved caller of a core operation.
type Identity struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// IsElevated reports whether the caller may act on other users' records.
func (i Identity) IsElevated() bool {
	return i.Role == RoleAdmin || i.Role == RoleLibrarian
}

// Owns reports whether the caller is userID or holds an elevated role.
func (i Identity) Owns(userID uint) bool {
	return i.UserID == userID || i.IsElevated()
}

// Claims are the token claims minted by the authentication service.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Parse verifies a bearer token and resolves the caller identity.
func Parse(cfg Config, token string) (Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}

	role := claims.Role
	if role == "" {
		role = RoleUser
	}
	return Identity{UserID: uint(id), Role: role}, nil
}

// Issue mints a token for an identity. It is used by the seed command and tests;
// production tokens come from the authentication service.
func Issue(cfg Config, who Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: who.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(who.UserID), 10),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}
