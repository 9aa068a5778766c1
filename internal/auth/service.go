package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/flashlearn/flashlearn/internal/config"
	"github.com/flashlearn/flashlearn/internal/database/users"
	"github.com/flashlearn/flashlearn/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrAuthRequired       = errors.New("authentication required")
)

// ErrPasswordInvariant signals that a freshly stored password hash failed
// to verify. This is a bug, not a user-facing condition.
var ErrPasswordInvariant = errors.New("password hash failed post-update verification")

// UserRepository is the user store the service authenticates against.
type UserRepository interface {
	CreateUser(name, email, passwordHash string) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
	GetUserByEmail(email string) (*entities.User, error)
	GetUserByName(name string) (*entities.User, error)
	UpdatePasswordHash(id uint, passwordHash string) error
	CountUsers() (int64, error)
}

// Service handles registration, login and password management.
type Service struct {
	users  UserRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo UserRepository, cfg config.Auth) *Service {
	return &Service{users: repo, config: cfg}
}

// Register creates an account. Duplicate name or email is reported as
// ErrUserExists.
func (s *Service) Register(name, email, password string) (*entities.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	// RFC 5321 length limit
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	if _, err := s.users.GetUserByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if _, err := s.users.GetUserByName(name); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(name, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login validates credentials. The identifier may be an email or a
// display name; when it matches one account's email and another account's
// name, the email match is tried first and wins if the password fits.
func (s *Service) Login(identifier, password string) (*entities.User, error) {
	if user := s.tryLogin(s.users.GetUserByEmail, identifier, password); user != nil {
		return user, nil
	}
	if user := s.tryLogin(s.users.GetUserByName, identifier, password); user != nil {
		return user, nil
	}
	return nil, ErrInvalidCredentials
}

func (s *Service) tryLogin(lookup func(string) (*entities.User, error), identifier, password string) *entities.User {
	user, err := lookup(identifier)
	if err != nil {
		return nil
	}
	if CheckPassword(password, user.PasswordHash) != nil {
		return nil
	}
	return user
}

// ChangePassword verifies the old password, stores the new hash, and
// re-verifies the stored hash. A re-verification failure is returned as
// ErrPasswordInvariant and indicates a bug.
func (s *Service) ChangePassword(email, oldPassword, newPassword string) error {
	user, err := s.Login(email, oldPassword)
	if err != nil {
		return err
	}

	newHash, err := HashPassword(newPassword, s.config.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(user.ID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	updated, err := s.users.GetUserByID(user.ID)
	if err != nil {
		return err
	}
	if CheckPassword(newPassword, updated.PasswordHash) != nil {
		return ErrPasswordInvariant
	}
	return nil
}

// GetUser retrieves an account by email.
func (s *Service) GetUser(email string) (*entities.User, error) {
	return s.users.GetUserByEmail(email)
}

// GetUserByID retrieves an account by ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.users.GetUserByID(id)
}

// HasUsers returns true if any accounts exist.
func (s *Service) HasUsers() (bool, error) {
	count, err := s.users.CountUsers()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
