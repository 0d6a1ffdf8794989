package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thinkcraftlab/studio/internal/events"
	"github.com/thinkcraftlab/studio/internal/hash"
	"github.com/thinkcraftlab/studio/internal/jwthelp"
	"github.com/thinkcraftlab/studio/internal/logging"
	"github.com/thinkcraftlab/studio/internal/models"
	"github.com/thinkcraftlab/studio/internal/repo"
	"github.com/thinkcraftlab/studio/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Events        events.Publisher
}

type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

type SignupInput struct {
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *AuthService) accessTTL() time.Duration {
	if h.AccessTTL > 0 {
		return h.AccessTTL
	}
	return 15 * time.Minute
}

func (h *AuthService) refreshTTL() time.Duration {
	if h.RefreshTTL > 0 {
		return h.RefreshTTL
	}
	return 7 * 24 * time.Hour
}

func (h *AuthService) CreateAccessToken(username, id string, accessExp time.Time) (string, error) {
	accessClaims := tokens.AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(accessExp),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(h.JWTSecret)
}

func (h *AuthService) CreateRefreshToken(id string, refreshExp time.Time) (string, string, error) {
	jti := jwthelp.NewJTI()
	refreshClaims := tokens.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(h.RefreshSecret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func (h *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
	}
	if err := h.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) || errors.Is(err, repo.ErrEmailAlreadyExist) {
			l.Warn("signup_error", "status", 409, "reason", err.Error())
			return nil, fmt.Errorf("%w: %s", ErrConflict, err.Error())
		}
		l.Error("signup_error", "status", 500, "error", err)
		return nil, err
	}

	events.Emit(ctx, h.Events, events.TopicUserEvents, events.Event{Type: events.UserRegistered, UserID: user.ID.String()})
	return user, nil
}

func (h *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if err := validateStruct(loginInput{Username: username, Password: password}); err != nil {
		return nil, err
	}

	user, err := h.Repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	res, jti, err := h.issue(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if err := h.Repo.AddRefreshToken(ctx, refreshModel(user.ID, res.RefreshToken, jti, res.RefreshExp)); err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot store refresh token", "error", err)
		return nil, err
	}

	events.Emit(ctx, h.Events, events.TopicUserEvents, events.Event{Type: events.UserLoggedIn, UserID: user.ID.String()})
	return res, nil
}

func (h *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, h.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidRefreshToken)
	}
	user, err := h.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidRefreshToken)
		}
		return nil, err
	}

	res, jti, err := h.issue(user)
	if err != nil {
		return nil, err
	}

	if err := h.Repo.RotateRefreshToken(ctx, claims.ID, refreshModel(user.ID, res.RefreshToken, jti, res.RefreshExp)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repo.ErrRefreshRevoked) {
			l.Warn("refresh_failed", "status", 401, "reason", err.Error())
			return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
		}
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, err
	}

	return res, nil
}

func (h *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return h.Repo.RevokeRefresh(ctx, refreshToken)
}

func (h *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := h.Repo.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (h *AuthService) issue(user *models.User) (*LoginResult, string, error) {
	now := time.Now()
	accessExp := now.Add(h.accessTTL())
	accessToken, err := h.CreateAccessToken(user.Username, user.ID.String(), accessExp)
	if err != nil {
		return nil, "", err
	}

	refreshExp := now.Add(h.refreshTTL())
	refreshToken, jti, err := h.CreateRefreshToken(user.ID.String(), refreshExp)
	if err != nil {
		return nil, "", err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, jti, nil
}

func refreshModel(userID uuid.UUID, raw, jti string, exp time.Time) *models.RefreshToken {
	return &models.RefreshToken{
		UserID:    userID,
		Token:     jwthelp.Sha256Hex(raw),
		JTI:       jti,
		ExpiresAt: exp.Unix(),
	}
}
