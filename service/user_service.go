package service

import (
	"errors"
	"fmt"

	"stargrid/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUserExists means the username is already taken.
var ErrUserExists = errors.New("username already exists")

// UserService manages optional named operator accounts. Passwords are stored
// as bcrypt hashes; the shared admin secret works without any user rows.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create registers an operator account with a bcrypt-hashed password
func (s *UserService) Create(req models.UserCreate) (*models.User, error) {
	req.Normalize()
	if req.Username == "" || req.Password == "" {
		verr := &models.ValidationError{}
		if req.Username == "" {
			verr.Add("username", "required non-empty string")
		}
		if req.Password == "" {
			verr.Add("password", "required non-empty string")
		}
		return nil, verr
	}

	if _, err := s.GetByUsername(req.Username); err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetByUsername fetches an operator account by username
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %s", username)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// CheckPassword verifies a password against the stored bcrypt hash
func (s *UserService) CheckPassword(username, password string) error {
	user, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
}
