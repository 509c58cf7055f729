package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ev-charging/api/internal/auth"
	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/repository"
	appErr "github.com/ev-charging/api/pkg/errors"
	"github.com/ev-charging/api/pkg/logger"
)

// MinPasswordLength is the shortest password register accepts.
const MinPasswordLength = 6

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// AuthResult is a freshly issued token and the profile it belongs to.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*models.UserSummary, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.Tokens
	cost     int
	// compared against when the email is unknown so both login failures cost the same
	decoyHash []byte
}

// NewAuthService hashes passwords with bcrypt at cost (bcrypt.DefaultCost when 0).
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Tokens, cost int) AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	decoy, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), cost)
	return &authService{userRepo: userRepo, tokens: tokens, cost: cost, decoyHash: decoy}
}

var _ AuthService = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func errInvalidCredentials() error {
	return appErr.New(appErr.CodeUnauthorized, "Invalid credentials")
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if len(password) > MaxPasswordBytes {
		return nil, appErr.Invalid(appErr.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes),
		})
	}
	email = normalizeEmail(email)

	var existing models.User
	err := s.userRepo.GetByEmail(ctx, email, &existing)
	switch {
	case err == nil:
		return nil, appErr.New(appErr.CodeConflict, "User already exists")
	case !appErr.IsCode(err, appErr.CodeNotFound):
		return nil, err
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(ph),
		Name:         strings.TrimSpace(name),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.L().Info("user registered", zap.String("user_id", user.ID))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	if err := s.userRepo.GetByEmail(ctx, normalizeEmail(email), &user); err != nil {
		if !appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.decoyHash, []byte(password))
		return nil, errInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.L().Info("login rejected", zap.String("user_id", user.ID))
		return nil, errInvalidCredentials()
	}

	return s.issue(&user)
}

func (s *authService) Me(ctx context.Context, userID string) (*models.UserSummary, error) {
	var user models.User
	if err := s.userRepo.GetByID(ctx, userID, &user); err != nil {
		return nil, err
	}
	sum := user.Summary()
	return &sum, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "issue token failed")
	}
	return &AuthResult{Token: token, User: user.Summary()}, nil
}
