package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/utils"
)

// UserRepo encapsulates all database queries related to users and their
// interest tags. It depends on a sql.DB connection configured at startup.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user together with any interest tags and returns the
// new id. The email is normalized to lower case so uniqueness is
// case-insensitive; a duplicate maps to ErrEmailExists. The password is
// hashed here so a plain credential never reaches an INSERT.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, interests []string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		// MySQL duplicate-key error for the uq_users_email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, tag := range dedupTags(interests) {
		if _, err = tx.ExecContext(ctx,
			"INSERT IGNORE INTO user_interests (user_id, tag) VALUES (?,?)",
			uint64(id), tag); err != nil {
			return 0, err
		}
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email, including the password
// hash for credential verification. Interests are loaded as well since the
// login response echoes them back.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u := &model.User{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Interests, err = r.InterestsByUser(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID fetches a user by id, interests included. Returns
// ErrUserNotFound when the row is absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = ? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Interests, err = r.InterestsByUser(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// InterestsByUser returns the interest tags of a user ordered by tag. A
// missing user is not an error: the result is simply empty, which is
// exactly the degradation the recommendation selector wants.
func (r *UserRepo) InterestsByUser(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT tag FROM user_interests WHERE user_id = ? ORDER BY tag", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// dedupTags trims, drops empties and removes duplicates while keeping the
// first occurrence order.
func dedupTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
