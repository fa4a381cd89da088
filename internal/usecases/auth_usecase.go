package usecases

import (
	"context"
	"errors"

	"keymint.backend/internal/domain/entities"
	domainerrors "keymint.backend/internal/domain/errors"
	"keymint.backend/internal/domain/repositories"
	"keymint.backend/pkg/crypto"
	"keymint.backend/pkg/jwt"
)

// AuthUsecase handles admin registration and login
type AuthUsecase struct {
	adminRepo  repositories.AdminRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(adminRepo repositories.AdminRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Register creates a new admin account
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterAdminInput) error {
	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}

	admin := &entities.Admin{
		Email:        input.Email,
		PasswordHash: passwordHash,
	}
	return u.adminRepo.Create(ctx, admin)
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same error so callers cannot enumerate
// registered accounts.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (string, error) {
	admin, err := u.adminRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.ErrInvalidCredentials
		}
		return "", err
	}

	if !crypto.CheckPassword(input.Password, admin.PasswordHash) {
		return "", domainerrors.ErrInvalidCredentials
	}

	return u.jwtService.GenerateToken(admin.ID)
}
