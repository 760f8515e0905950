package service

import (
	"context"
	"errors"

	"carloc-backend/internal/domain"
	"carloc-backend/internal/logger"
	"carloc-backend/internal/repository"
	"carloc-backend/internal/security"
)

// ErrInvalidCredentials deliberately does not say whether the email or
// the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.Active {
		return nil, "", ErrInvalidCredentials
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		logger.Warn("Failed login attempt", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	var verr domain.ValidationErrors
	if name == "" {
		verr.Add("name", "nom requis")
	}
	if email == "" {
		verr.Add("email", "email requis")
	}
	if len(password) < 8 {
		verr.Add("password", "mot de passe de 8 caractères minimum")
	}
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleAgent:
	default:
		verr.Add("role", "rôle inconnu")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}
