package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/application/authz"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	bearerScheme = "Bearer"
	principalKey = "principal"
)

var (
	ErrTokenMissing = errors.New("token not sent")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the token body: the caller under "jwtPayload" plus the registered
// claims (exp, iat).
type Claims struct {
	Payload authz.Principal `json:"jwtPayload"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 bearer tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses a raw token and returns the caller it carries.
func (v *TokenVerifier) Verify(raw string) (authz.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return authz.Principal{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return authz.Principal{}, ErrTokenInvalid
	}
	if err = claims.Payload.Validate(); err != nil {
		return authz.Principal{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims.Payload, nil
}

// Middleware rejects requests without a valid bearer token with 401 and puts
// the caller on the echo context.
func (v *TokenVerifier) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return writeError(ctx, http.StatusUnauthorized, ErrTokenMissing.Error())
			}

			raw, err := parseAuthHeader(header)
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, ErrTokenInvalid.Error())
			}

			principal, err := v.Verify(raw)
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, ErrTokenInvalid.Error())
			}

			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

// Issue signs a token for principal. A zero ttl issues a token without expiry.
func (v *TokenVerifier) Issue(principal authz.Principal, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Payload: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// PrincipalFrom returns the caller stored by the auth middleware.
func PrincipalFrom(ctx echo.Context) (authz.Principal, bool) {
	principal, ok := ctx.Get(principalKey).(authz.Principal)
	return principal, ok
}

func parseAuthHeader(header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", fmt.Errorf("auth header doesn't contain two parts")
	}
	if !strings.EqualFold(parts[0], bearerScheme) {
		return "", fmt.Errorf("first auth header part is invalid")
	}
	return parts[1], nil
}
