package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-ng/atelier-backend/pkg/config"
	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/logger"
	"github.com/atelier-ng/atelier-backend/pkg/security"
)

const adminSubject = "admin"

// Claims is the JWT payload issued to an authenticated admin.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LoginInput is the credential pair posted to the admin login endpoint.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the issued token and its expiry.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service authenticates the single configured admin and mints and validates
// the bearer tokens the admin surface runs on.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	ValidateToken(token string) (*Claims, error)
}

type service struct {
	jwtCfg   config.JWTConfig
	adminCfg config.AdminConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig, logg *logger.Logger) (Service, error) {
	if jwtCfg.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth: jwt secret is required")
	}
	if adminCfg.Email == "" || adminCfg.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth: admin credentials are required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth: logger is required")
	}
	return &service{jwtCfg: jwtCfg, adminCfg: adminCfg, logg: logg, now: time.Now}, nil
}

// Login verifies the credential pair against the configured admin account.
// Wrong email and wrong password return the same error.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	if email != strings.ToLower(strings.TrimSpace(s.adminCfg.Email)) {
		s.logg.Warn(ctx, "admin login attempt with unknown email")
		return nil, invalid
	}

	ok, err := security.VerifyPassword(input.Password, s.adminCfg.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to verify password")
	}
	if !ok {
		s.logg.Warn(ctx, "admin login attempt with wrong password")
		return nil, invalid
	}

	now := s.now()
	expiresAt := now.Add(s.jwtCfg.Expiration())
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to sign token")
	}

	s.logg.Info(ctx, "admin logged in")
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies a bearer token issued by Login.
func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unexpected signing method")
		}
		return []byte(s.jwtCfg.Secret), nil
	}, jwt.WithIssuer(s.jwtCfg.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired token")
	}
	if claims.Subject != adminSubject {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token subject")
	}
	return claims, nil
}
