package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/places/api/internal/database"
	"github.com/forgo/places/api/internal/model"
	"github.com/forgo/places/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

func testJWTService(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewService(jwt.Config{
		Secret:         "test-secret",
		Issuer:         "places-api-test",
		ExpirationMins: 60,
	})
	if err != nil {
		t.Fatalf("failed to create jwt service: %v", err)
	}
	return svc
}

// ============================================================================
// Signup
// ============================================================================

func TestSignup(t *testing.T) {
	ctx := context.Background()

	var created *model.User
	userRepo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user:new1"
			created = user
			return nil
		},
	}

	svc := NewAuthService(userRepo, testJWTService(t))

	resp, err := svc.Signup(ctx, model.SignupRequest{
		Name:     "Max Schwarz",
		Email:    "Max@Test.com",
		Password: "testers",
	}, "uploads/images/avatar.png")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if created == nil {
		t.Fatal("expected user to be created")
	}
	if created.Email != "max@test.com" {
		t.Errorf("expected email to be lowercased, got %s", created.Email)
	}
	if created.Hash == nil || *created.Hash == "testers" {
		t.Error("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*created.Hash), []byte("testers")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if resp.UserID != "user:new1" {
		t.Errorf("unexpected user id %s", resp.UserID)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     model.SignupRequest
		wantErr error
	}{
		{"missing name", model.SignupRequest{Name: " ", Email: "a@b.com", Password: "testers"}, ErrNameRequired},
		{"bad email", model.SignupRequest{Name: "Max", Email: "not-an-email", Password: "testers"}, ErrInvalidEmail},
		{"short password", model.SignupRequest{Name: "Max", Email: "a@b.com", Password: "12345"}, ErrPasswordTooShort},
	}

	svc := NewAuthService(&mockUserRepo{}, testJWTService(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.req, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:existing", Email: email}, nil
		},
		createFunc: func(ctx context.Context, user *model.User) error {
			t.Error("Create must not be called for a duplicate email")
			return nil
		},
	}

	svc := NewAuthService(userRepo, testJWTService(t))

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Name:     "Max",
		Email:    "taken@test.com",
		Password: "testers",
	}, "")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSignupDuplicateEmailRace(t *testing.T) {
	// GetByEmail sees nothing, but a concurrent signup wins the unique
	// index; the store's duplicate error must still surface as a conflict
	userRepo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			return database.ErrDuplicate
		},
	}

	svc := NewAuthService(userRepo, testJWTService(t))

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Name:     "Max",
		Email:    "raced@test.com",
		Password: "testers",
	}, "")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

// ============================================================================
// Login
// ============================================================================

func TestLogin(t *testing.T) {
	hashBytes, _ := bcrypt.GenerateFromPassword([]byte("testers"), bcrypt.MinCost)
	hash := string(hashBytes)

	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == "max@test.com" {
				return &model.User{ID: "user:u1", Email: email, Hash: &hash}, nil
			}
			return nil, nil
		},
	}

	jwtSvc := testJWTService(t)
	svc := NewAuthService(userRepo, jwtSvc)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "Max@Test.com",
		Password: "testers",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.UserID != "user:u1" {
		t.Errorf("unexpected user id %s", resp.UserID)
	}

	claims, err := jwtSvc.Validate(resp.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.UserID != "user:u1" || claims.Email != "max@test.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hashBytes, _ := bcrypt.GenerateFromPassword([]byte("testers"), bcrypt.MinCost)
	hash := string(hashBytes)

	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:u1", Email: email, Hash: &hash}, nil
		},
	}

	svc := NewAuthService(userRepo, testJWTService(t))

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "max@test.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testJWTService(t))

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ghost@test.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ============================================================================
// ListUsers
// ============================================================================

func TestListUsersStripsHashes(t *testing.T) {
	hash := "should-not-leak"
	userRepo := &mockUserRepo{
		listFunc: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{
				{ID: "user:u1", Email: "a@test.com", Hash: &hash},
				{ID: "user:u2", Email: "b@test.com"},
			}, nil
		},
	}

	svc := NewAuthService(userRepo, testJWTService(t))

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Hash != nil {
			t.Errorf("hash leaked for %s", u.ID)
		}
	}
}
