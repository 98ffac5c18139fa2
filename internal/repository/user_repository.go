package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/sneaker-store/internal/model"
	"github.com/iliyamo/sneaker-store/internal/utils"
)

// UserRepo provides access to the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  The password is hashed with
// bcrypt before it is stored; the username and email are normalized so
// the unique indexes behave case-insensitively.  MySQL duplicate-key
// errors (1062) are mapped to ErrUsernameExists or ErrEmailExists
// depending on which index rejected the row.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, string(role))
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "username") {
				return 0, ErrUsernameExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,role,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	u.Role = model.Role(role)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,role,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	u.Role = model.Role(role)
	return u, err
}
