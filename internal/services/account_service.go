package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"tradewise/internal/models/db_models"
	"tradewise/internal/models/request_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetProfile(ctx context.Context, userID string) (*db_models.User, error)
	SetRole(ctx context.Context, userID, role string) (*db_models.User, error)
}

type AccountService struct {
	userRepo repositories.UserRepository
}

func NewAccountService(userRepo repositories.UserRepository) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	if user == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	// Only accept referral codes that belong to a real associate; a bad code
	// is dropped silently rather than blocking signup.
	referredBy := strings.TrimSpace(request.ReferralCode)
	if referredBy != "" {
		associate, err := a.userRepo.FindByReferralCode(ctx, referredBy)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if associate == nil {
			referredBy = ""
		}
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newUser := &db_models.User{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Phone:        request.Phone,
		Role:         "user", // default role
		ReferredBy:   referredBy,
	}

	if err := a.userRepo.Insert(ctx, newUser); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

// SetRole changes a user's role. Promoting to associate also mints the
// referral code the associate hands out; the code survives a later demotion
// so historic ReferredBy links keep resolving.
func (a *AccountService) SetRole(ctx context.Context, userID, role string) (*db_models.User, error) {
	switch role {
	case "user", "admin", "associate":
	default:
		return nil, utils.ErrInvalidRole
	}

	if _, err := uuid.Parse(userID); err != nil {
		return nil, utils.ErrAccountNotFound
	}

	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	user.Role = role
	if role == "associate" && user.ReferralCode == "" {
		code, err := a.mintReferralCode(ctx)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		user.ReferralCode = code
	}

	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (a *AccountService) mintReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := utils.GenerateSecureToken(4)
		if err != nil {
			return "", err
		}
		taken, err := a.userRepo.ReferralCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", utils.ErrDatabaseError
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*db_models.User, error) {
	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}
