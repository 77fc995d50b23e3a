package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/repos"
	types "github.com/mthstanley/stockpot/internal/domain"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

const (
	TokenAudience = "https://api.stockpot.com"
	TokenTTL      = 7 * 24 * time.Hour

	invalidCredentials = "Invalid credentials"
)

type AuthService interface {
	// Validate checks a username/password pair and returns the bound credentials.
	Validate(ctx context.Context, username, password string) (*types.AuthUser, error)
	// IssueToken mints a signed token whose subject is creds.Username.
	IssueToken(ctx context.Context, creds *types.AuthUser) (string, error)
	// Authenticate verifies a token and returns the credentials it names.
	Authenticate(ctx context.Context, token string) (*types.AuthUser, error)
}

type authService struct {
	log          *logger.Logger
	authRepo     repos.AuthUserRepo
	jwtSecretKey []byte
	tokenTTL     time.Duration
	dummyHash    []byte
	now          func() time.Time
}

func NewAuthService(log *logger.Logger, authRepo repos.AuthUserRepo, jwtSecretKey string, bcryptCost int) (AuthService, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	// compared against when the username is unknown so both paths pay for a hash check
	dummy, err := bcrypt.GenerateFromPassword([]byte("stockpot-dummy-password"), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		authRepo:     authRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		tokenTTL:     TokenTTL,
		dummyHash:    dummy,
		now:          time.Now,
	}, nil
}

func (as *authService) Validate(ctx context.Context, username, password string) (*types.AuthUser, error) {
	const op = "AuthService.Validate"
	username = strings.TrimSpace(username)

	expected := as.dummyHash
	creds, lookupErr := as.authRepo.GetByUsername(dbctx.Context{Ctx: ctx}, username)
	if lookupErr == nil {
		expected = []byte(creds.PasswordHash)
	}

	cmpErr := bcrypt.CompareHashAndPassword(expected, []byte(password))

	switch {
	case errors.Is(lookupErr, gorm.ErrRecordNotFound):
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, invalidCredentials, nil)
	case lookupErr != nil:
		return nil, opaqueInternal(as.log, op, lookupErr)
	case errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword):
		as.log.Debug("Password mismatch", "username", username)
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, invalidCredentials, nil)
	case cmpErr != nil:
		return nil, opaqueInternal(as.log, op, cmpErr)
	}
	return creds, nil
}

func (as *authService) IssueToken(ctx context.Context, creds *types.AuthUser) (string, error) {
	const op = "AuthService.IssueToken"
	if creds == nil || strings.TrimSpace(creds.Username) == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing username", nil)
	}
	now := as.now()
	claims := jwt.RegisteredClaims{
		Subject:   creds.Username,
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecretKey)
	if err != nil {
		return "", opaqueInternal(as.log, op, err)
	}
	return signed, nil
}

func (as *authService) Authenticate(ctx context.Context, token string) (*types.AuthUser, error) {
	const op = "AuthService.Authenticate"
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (interface{}, error) {
		return as.jwtSecretKey, nil
	},
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
	)
	if err != nil || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		as.log.Debug("Token rejected", "error", err)
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, invalidCredentials, err)
	}

	creds, err := as.authRepo.GetByUsername(dbctx.Context{Ctx: ctx}, claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, op, invalidCredentials, nil)
	}
	if err != nil {
		return nil, opaqueInternal(as.log, op, err)
	}
	return creds, nil
}
