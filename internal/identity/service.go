package identity

import (
	"context"
	"errors"
	"time"

	"github.com/ibrahimalsalim/tracker-api/internal/shared/auth"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/logger"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"

	"golang.org/x/crypto/bcrypt"
)

// Service covers registration, login and user management.
type Service struct {
	users UserRepoInterface
	jwt   *auth.JWTService
	log   *logger.Logger
}

func NewService(users UserRepoInterface, jwt *auth.JWTService, log *logger.Logger) *Service {
	return &Service{users: users, jwt: jwt, log: log}
}

type RegisterInput struct {
	Type        int
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Address     string
	Email       string
	Username    string
	Password    string
}

// Register creates an account and returns it with a fresh token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	typeOK, err := s.users.TypeExists(ctx, input.Type)
	if err != nil {
		return nil, "", err
	}
	if !typeOK {
		return nil, "", ErrUserTypeNotFound
	}

	taken, err := s.users.EmailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		Type:        input.Type,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Address:     input.Address,
		Email:       input.Email,
		Username:    input.Username,
		Password:    string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Type)
	if err != nil {
		return nil, "", err
	}

	s.log.Info(logger.Entry{
		Action:  "user_registered",
		Message: "new user registered",
		Additional: map[string]any{
			"user_id": user.ID,
			"type":    user.Type,
		},
	})
	return user, token, nil
}

// Login verifies the password and issues a token carrying {id, type}.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Type)
	if err != nil {
		return nil, "", err
	}

	s.log.Info(logger.Entry{
		Action:     "user_logged_in",
		Message:    "login succeeded",
		Additional: map[string]any{"user_id": user.ID},
	})
	return user, token, nil
}

func (s *Service) ListUsers(ctx context.Context, page, limit int) ([]User, pagination.Meta, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, meta, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.users.FindByID(ctx, id)
}

type UpdateUserInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Address     string
	Email       string
	Username    string
}

// UpdateUser replaces the profile fields. Role and password are out of
// scope here; the role is fixed at registration.
func (s *Service) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	taken, err := s.users.EmailTaken(ctx, input.Email, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.DateOfBirth = input.DateOfBirth
	user.Address = input.Address
	user.Email = input.Email
	user.Username = input.Username
	return s.users.Update(ctx, user)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
