package repository

import (
	"errors"
	"log"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByID(id string) (*domain.User, error)
	FindUserByUsername(username string) (*domain.User, error)
	ListByRole(role domain.Role) ([]domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, errors.New("failed to create user")
	}

	return user, nil
}

func (r *userRepository) FindUserByID(id string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		log.Printf("find user by id error: %v", err)
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByUsername(username string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		log.Printf("find user by username error: %v", err)
		return nil, err
	}

	return user, nil
}

// ListByRole returns a minimal projection (id, username, role); password
// hashes never leave the store through this path.
func (r *userRepository) ListByRole(role domain.Role) ([]domain.User, error) {
	var users []domain.User

	err := r.db.
		Select("id", "username", "role").
		Where("role = ?", role).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		log.Printf("list users by role error: %v", err)
		return nil, err
	}

	return users, nil
}
