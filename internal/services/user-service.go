package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/SundayYogurt/approval_service/internal/dto"
	"github.com/SundayYogurt/approval_service/internal/helper"
	"github.com/SundayYogurt/approval_service/internal/interfaces"
	"github.com/SundayYogurt/approval_service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const EventUserRegistered = "user.registered"

type UserService interface {
	Register(input dto.RegisterRequest) (*domain.User, error)
	Login(input dto.UserLogin) (*dto.LoginResponse, error)
	FindByID(id string) (*domain.User, error)
	FindApprovers() ([]dto.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth

	// messaging
	producer interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
) UserService {
	return &userService{
		repo:     repo,
		producer: producer,
		auth:     auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))
	password := strings.TrimSpace(input.Password)

	if username == "" || password == "" {
		return nil, errors.New("invalid inputs")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.FindUserByUsername(username)
	if err == nil && existing != nil && existing.ID != "" {
		return nil, errors.New("username already exists")
	}

	// credentials are stored hashed only
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	newUser := &domain.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		return nil, err
	}
	if usr == nil || usr.ID == "" {
		return nil, errors.New("failed to create user")
	}

	if u.producer != nil {
		payload := fmt.Sprintf(`{"user_id":"%s","username":"%s","role":"%s"}`,
			usr.ID, usr.Username, usr.Role,
		)
		_ = u.producer.PublishMessage([]byte(EventUserRegistered), []byte(payload))
	}

	return usr, nil
}

func (u *userService) Login(input dto.UserLogin) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))
	password := strings.TrimSpace(input.Password)

	if username == "" || password == "" {
		return nil, errors.New("invalid username or password")
	}

	user, err := u.repo.FindUserByUsername(username)
	if err != nil || user == nil || user.ID == "" {
		return nil, errors.New("invalid username or password")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token, err := u.auth.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	}, nil
}

func (u *userService) FindByID(id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrUserNotFound
	}
	return u.repo.FindUserByID(id)
}

func (u *userService) FindApprovers() ([]dto.UserResponse, error) {
	users, err := u.repo.ListByRole(domain.RoleApprover)
	if err != nil {
		return nil, err
	}

	approvers := make([]dto.UserResponse, 0, len(users))
	for _, usr := range users {
		approvers = append(approvers, dto.UserResponse{
			ID:       usr.ID,
			Username: usr.Username,
			Role:     string(usr.Role),
		})
	}
	return approvers, nil
}
