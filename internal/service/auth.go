package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/forgo/places/api/internal/database"
	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	minPasswordLength = 6
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// AuthService handles signup, login, and user listing
type AuthService struct {
	userRepo UserRepository
	jwt      *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, jwtService *jwt.Service) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

// Signup creates a new account and returns a signed credential for it.
// imagePath is the stored avatar path from the multipart upload, empty if
// none was sent.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest, imagePath string) (*model.AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashBytes)

	user := &model.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Hash:      &hash,
		ImagePath: imagePath,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the GetByEmail check; the
		// unique index on email is the authority.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.jwt.Sign(jwt.Claims{
		Subject: user.ID,
		UserID:  user.ID,
		Email:   user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}, nil
}

// Login verifies credentials and returns a signed credential. A missing
// account and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Hash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Sign(jwt.Claims{
		Subject: user.ID,
		UserID:  user.ID,
		Email:   user.Email,
	})
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}, nil
}

// ListUsers returns all accounts without credential material
func (s *AuthService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		u.Hash = nil
	}

	return users, nil
}
