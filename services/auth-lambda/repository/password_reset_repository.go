package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/account-auth-services/services/auth-lambda/models"
)

// PasswordResetRepository handles password-reset OTP rows
type PasswordResetRepository struct {
	db *sql.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *sql.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create inserts a new OTP row stamped with rec.CreatedAt.
func (r *PasswordResetRepository) Create(ctx context.Context, rec *models.PasswordResetOTP) (int64, error) {
	query := `
		INSERT INTO password_resets (email, otp_code, created_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, rec.Email, rec.OTPCode, rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create password reset: %w", err)
	}

	resetID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return resetID, nil
}

// FindByCode looks up an OTP row by code value alone, not scoped by email.
// When live codes of different emails collide the newest row wins.
// Returns (nil, nil) when no row matches.
func (r *PasswordResetRepository) FindByCode(ctx context.Context, code string) (*models.PasswordResetOTP, error) {
	query := `
		SELECT reset_id, email, otp_code, created_at
		FROM password_resets
		WHERE otp_code = ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	var rec models.PasswordResetOTP
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&rec.ID,
		&rec.Email,
		&rec.OTPCode,
		&rec.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query password reset: %w", err)
	}

	return &rec, nil
}
