package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/wanderlog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailInvalid       = errors.New("email is invalid")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNameMissing        = errors.New("name is required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService handles tenant registration and authentication.
type UserService struct {
	db *gorm.DB
}

// NewUserService returns a new UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register creates a tenant account with a bcrypt-hashed password and a
// fresh uid that keys the tenant's website and analytics.
func (s *UserService) Register(name, email, password string) (*db.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || len(name) > 255 {
		return nil, ErrNameMissing
	}
	if _, err := mail.ParseAddress(email); err != nil || len(email) > 255 {
		return nil, ErrEmailInvalid
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	var existing db.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		UID:      uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Name:     name,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetByUID looks a tenant up by its public uid.
func (s *UserService) GetByUID(uid string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("uid = ?", uid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the display name for a tenant.
func (s *UserService) UpdateProfile(uid, name string) (*db.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameMissing
	}

	user, err := s.GetByUID(uid)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FirstUserUID 返回最早注册用户的 uid，供匿名访客的默认站点使用。
func (s *UserService) FirstUserUID() (string, error) {
	var user db.User
	if err := s.db.Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.UID, nil
}
