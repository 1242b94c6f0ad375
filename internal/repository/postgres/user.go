package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vocabler/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Exists checks if a user record is present
func (r *UserRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new user. Returns domain.ErrConflict if the user
// already exists.
func (r *UserRepo) Create(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		INSERT INTO users (user_id, ai_request_count)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id, ai_request_count, ai_last_request_date, created_at
	`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID returns a user by id. Returns domain.ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `
		SELECT user_id, ai_request_count, ai_last_request_date, created_at
		FROM users
		WHERE user_id = $1
	`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// AddLearnedWord records a word as learned. Adding an id already
// present is a no-op.
func (r *UserRepo) AddLearnedWord(ctx context.Context, userID int64, wordID int) error {
	query := `
		INSERT INTO user_learned_words (user_id, word_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, wordID); err != nil {
		return fmt.Errorf("add learned word: %w", err)
	}
	return nil
}

// AddViewedWord records a word as viewed. Idempotent.
func (r *UserRepo) AddViewedWord(ctx context.Context, userID int64, wordID int) error {
	query := `
		INSERT INTO user_viewed_words (user_id, word_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, wordID); err != nil {
		return fmt.Errorf("add viewed word: %w", err)
	}
	return nil
}

// CanMakeRequest reports whether the user is under the daily AI quota.
// Side-effect-free.
func (r *UserRepo) CanMakeRequest(ctx context.Context, userID int64) (bool, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.CanMakeRequest(time.Now()), nil
}

// IncrementRequestCount bumps today's AI usage counter. The check and
// the increment run in a single conditional UPDATE, so concurrent
// requests for one user serialize on the row lock. Returns
// domain.ErrQuotaExceeded when the limit is already spent.
func (r *UserRepo) IncrementRequestCount(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET ai_request_count = CASE
				WHEN ai_last_request_date = (NOW() AT TIME ZONE 'UTC')::date
					THEN ai_request_count + 1
				ELSE 1
			END,
			ai_last_request_date = (NOW() AT TIME ZONE 'UTC')::date
		WHERE user_id = $1
			AND (ai_last_request_date IS NULL
				OR ai_last_request_date <> (NOW() AT TIME ZONE 'UTC')::date
				OR ai_request_count < $2)
	`
	res, err := r.db.ExecContext(ctx, query, userID, domain.DailyRequestLimit)
	if err != nil {
		return fmt.Errorf("increment request count: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment request count: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// No row updated: either the user is missing or the quota is spent.
	exists, err := r.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	return fmt.Errorf("user %d: %w", userID, domain.ErrQuotaExceeded)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var lastRequest sql.NullTime
	if err := row.Scan(&u.UserID, &u.AIRequestCount, &lastRequest, &u.CreatedAt); err != nil {
		return nil, err
	}
	if lastRequest.Valid {
		u.AILastRequestAt = &lastRequest.Time
	}
	return &u, nil
}
