package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	Update(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByReferralCode(ctx context.Context, code string) (*db_models.User, error)
	ReferralCodeTaken(ctx context.Context, code string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}

func (u *userRepository) ReferralCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&db_models.User{}).
		Where("referral_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (u *userRepository) FindById(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByReferralCode(ctx context.Context, code string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).
		Where("referral_code = ? AND role = ?", code, "associate").
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
