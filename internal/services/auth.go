package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tilemart/storefront-backend/internal/data/repos/user"
	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/pkg/ctxutil"
	apperrors "github.com/tilemart/storefront-backend/internal/pkg/errors"
	"github.com/tilemart/storefront-backend/internal/pkg/logger"
)

// AuthService owns registration, login and token handling. The rest of the
// system only ever asks "who is the current user" via the request context it
// populates.
type AuthService interface {
	RegisterUser(ctx context.Context, u *types.User) error
	LoginUser(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context, refreshToken string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log           *logger.Logger
	userRepo      user.UserRepo
	userTokenRepo user.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	log *logger.Logger,
	userRepo user.UserRepo,
	userTokenRepo user.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) RegisterUser(ctx context.Context, u *types.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return apperrors.NewValidationError("email", "must not be empty")
	}
	if len(u.Password) < 8 {
		return apperrors.NewValidationError("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, u.Email)
	if err != nil {
		return apperrors.NewStoreError("check email", err)
	}
	if exists {
		return apperrors.NewValidationError("email", "is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hashed)
	u.ID = uuid.New()

	if _, err := as.userRepo.Create(ctx, nil, []*types.User{u}); err != nil {
		return apperrors.NewStoreError("create user", err)
	}
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", apperrors.NewStoreError("load user", err)
	}
	if len(users) == 0 {
		return "", "", apperrors.ErrUnauthenticated
	}
	u := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", apperrors.ErrUnauthenticated
	}

	// One refresh token per user; logging in again invalidates older ones.
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, u.ID); err != nil {
		return "", "", apperrors.NewStoreError("rotate tokens", err)
	}
	return as.issueTokens(ctx, u.ID)
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	tok, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apperrors.ErrUnauthenticated
		}
		return "", "", apperrors.NewStoreError("load token", err)
	}
	if tok.ExpiresAt.Before(time.Now()) {
		_ = as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
		return "", "", apperrors.ErrUnauthenticated
	}

	if err := as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken); err != nil {
		return "", "", apperrors.NewStoreError("rotate tokens", err)
	}
	return as.issueTokens(ctx, tok.UserID)
}

func (as *authService) LogoutUser(ctx context.Context, refreshToken string) error {
	if err := as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken); err != nil {
		return apperrors.NewStoreError("delete token", err)
	}
	return nil
}

func (as *authService) issueTokens(ctx context.Context, userID uuid.UUID) (string, string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.New().String()
	if _, err := as.userTokenRepo.Create(ctx, nil, &types.UserToken{
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}); err != nil {
		return "", "", apperrors.NewStoreError("create token", err)
	}
	return accessToken, refreshToken, nil
}

// SetContextFromToken validates the access token and records the user on the
// request context, preserving the session identity already attached there.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, apperrors.ErrUnauthenticated
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ctx, apperrors.ErrUnauthenticated
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperrors.ErrUnauthenticated
	}

	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		rd = &ctxutil.RequestData{}
		ctx = ctxutil.WithRequestData(ctx, rd)
	}
	rd.TokenString = tokenString
	rd.UserID = userID
	return ctx, nil
}
