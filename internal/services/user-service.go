package services

import (
	"errors"
	"strings"

	"github.com/SundayYogurt/task_service/internal/domain"
	"github.com/SundayYogurt/task_service/internal/dto"
	"github.com/SundayYogurt/task_service/internal/helper"
	"github.com/SundayYogurt/task_service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(input dto.UserSignup) (*domain.User, error)
	Login(email, password string) (*domain.User, error)
	GetProfile(userID uint) (*domain.User, error)
	UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*domain.User, error)

	// SetRole changes a user's global role; only a global admin may call it.
	SetRole(actor *domain.User, userID uint, role domain.Role) error
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{
		repo: repo,
		auth: auth,
	}
}

func (u *userService) Register(input dto.UserSignup) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.New("invalid inputs")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	existing, err := u.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	newUser := &domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         domain.RoleMember,
		Active:       true,
	}

	return u.repo.CreateUser(newUser)
}

func (u *userService) Login(email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.Active {
		return nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return user, nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (u *userService) UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userService) SetRole(actor *domain.User, userID uint, role domain.Role) error {
	if actor == nil || !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if !role.Valid() {
		return errors.New("invalid role")
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return ErrNotFound
	}

	user.Role = role
	return u.repo.SaveUser(user)
}
