package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks/internal/config"
	ierr "github.com/finbooks/finbooks/internal/errors"
	"github.com/finbooks/finbooks/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

// Claims identify the caller of an authenticated request. Every token
// carries the tenant so a request can never read another tenant's books.
type Claims struct {
	UserID   string
	TenantID string
}

// Provider mints and validates the bearer tokens the API accepts.
type Provider interface {
	GenerateToken(userID, tenantID string) (string, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return &jwtAuth{
		AuthConfig: cfg.Auth,
	}
}

type jwtAuth struct {
	AuthConfig config.AuthConfig
}

// GenerateToken issues an HS256 token with a 30 day expiry.
func (j *jwtAuth) GenerateToken(userID, tenantID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   userID,
		"tenant_id": tenantID,
		"exp":       now.Add(30 * 24 * time.Hour).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.AuthConfig.Secret))
}

func (j *jwtAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(j.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	tenantID, tenantOk := claims["tenant_id"].(string)
	if !tenantOk {
		tenantID = types.DefaultTenantID
	}

	return &Claims{UserID: userID, TenantID: tenantID}, nil
}
