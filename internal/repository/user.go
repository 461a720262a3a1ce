package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forgo/places/api/internal/database"
	"github.com/forgo/places/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user with an empty back-reference list. The id and
// timestamps are minted client-side so the caller sees the stored values
// without a refetch.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	id := newRecordID("user")
	now := time.Now().UTC()

	query := `
		CREATE type::record($id) CONTENT {
			name: $name,
			email: $email,
			hash: $hash,
			image: $image,
			places: [],
			created_on: <datetime> $now,
			updated_on: <datetime> $now
		}
	`

	vars := map[string]interface{}{
		"id":    id,
		"name":  user.Name,
		"email": user.Email,
		"hash":  ptrToNone(user.Hash),
		"image": user.ImagePath,
		"now":   now.Format(time.RFC3339Nano),
	}

	if _, err := r.db.Query(ctx, query, vars); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	user.ID = id
	user.Places = []string{}
	user.CreatedOn = now
	user.UpdatedOn = now
	return nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when no such record
// exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no such
// record exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// List retrieves all users. Hashes are omitted at the query level so they
// never cross the wire.
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * OMIT hash FROM user ORDER BY created_on ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows := extractQueryRows(result)
	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		var user model.User
		if err := decodeRecord(data, &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, nil
}

// Helper functions

func parseUserResult(result interface{}) (*model.User, error) {
	if result == nil {
		return nil, nil
	}

	// Handle array wrapper
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, nil
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	// Extract hash before the JSON round trip (User.Hash has json:"-")
	var hash *string
	if h, ok := data["hash"].(string); ok {
		hash = &h
	}

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, err
	}

	user.Hash = hash
	return &user, nil
}

// ptrToNone converts a string pointer to its value or nil, so optional
// fields store as NONE
func ptrToNone(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
