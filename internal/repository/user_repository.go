package repository

import (
	"context"
	"errors"

	"github.com/ev-charging/api/internal/models"
	appErr "github.com/ev-charging/api/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create fails with CodeConflict when the email is taken.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string, dest *models.User) error
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	// Summaries returns the public profiles of the users among ids that exist.
	Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db, "User not found"), db: db}
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.BaseRepository.Create(ctx, u); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return appErr.Wrap(err, appErr.CodeConflict, "User already exists")
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "User not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

func (r *userRepository) Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Select("id", "name", "email").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "load station creators failed")
	}
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out, nil
}
