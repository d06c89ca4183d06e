package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// LineUser mirrors the 'line_users' table: everyone who has ever messaged
// the OA, recorded on first contact from their LINE profile.
type LineUser struct {
	ID            uint64
	UserID        string
	DisplayName   string
	PictureURL    string
	StatusMessage string
	CreatedAt     time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrUserExists = errors.New("line user already exists")

// Create inserts a user keyed by LINE user ID.  A duplicate key maps to
// ErrUserExists so callers can treat re-registration as a no-op.
func (r *UserRepo) Create(ctx context.Context, userID, displayName, pictureURL, statusMessage string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO line_users (user_id, display_name, picture_url, status_message) VALUES (?,?,?,?)",
		userID, displayName, pictureURL, statusMessage)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// Exists reports whether a LINE user ID is already registered.
func (r *UserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM line_users WHERE user_id=? LIMIT 1", userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByUserID fetches one registered user by LINE user ID.
func (r *UserRepo) GetByUserID(ctx context.Context, userID string) (LineUser, error) {
	var u LineUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,display_name,picture_url,status_message,created_at FROM line_users WHERE user_id=? LIMIT 1",
		userID).Scan(&u.ID, &u.UserID, &u.DisplayName, &u.PictureURL, &u.StatusMessage, &u.CreatedAt)
	return u, err
}
