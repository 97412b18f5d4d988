package usecase

import (
	"context"
	"time"

	apperrors "github.com/account-auth-services/common/errors"
	"github.com/account-auth-services/common/hash"
	"github.com/account-auth-services/common/logger"
	"github.com/account-auth-services/common/validator"
	"github.com/account-auth-services/services/auth-lambda/models"
)

// UserStore is the persistence surface the use case needs for accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// ResetStore is the persistence surface for password-reset OTP rows.
type ResetStore interface {
	Create(ctx context.Context, rec *models.PasswordResetOTP) (int64, error)
	FindByCode(ctx context.Context, code string) (*models.PasswordResetOTP, error)
}

// AuthUseCase handles authentication business logic
type AuthUseCase struct {
	users  UserStore
	resets ResetStore
	codes  CodeSource
	now    func() time.Time
	log    *logger.Logger
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(users UserStore, resets ResetStore) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		resets: resets,
		codes:  NewCodeSource(),
		now:    time.Now,
		log:    logger.Default(),
	}
}

// Register validates registration input and persists a new account.
func (uc *AuthUseCase) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	// Validate input
	if msg := validator.GetEmailError(req.Email); msg != "" {
		return nil, apperrors.Validation("email", msg)
	}
	if msg := validator.GetUsernameError(req.Username); msg != "" {
		return nil, apperrors.Validation("username", msg)
	}
	if msg := validator.GetPasswordError(req.Password); msg != "" {
		return nil, apperrors.Validation("password", msg)
	}

	// Check unique fields
	emailTaken, err := uc.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if emailTaken {
		return nil, apperrors.AlreadyExists("email already exists")
	}

	usernameTaken, err := uc.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if usernameTaken {
		return nil, apperrors.AlreadyExists("username already exists")
	}

	// Hash before anything touches the store; the raw password stops here.
	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password").WithCause(err)
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	userID, err := uc.users.Create(ctx, &user)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	user.ID = userID
	user.CreatedAt = uc.now()

	uc.log.WithFields(map[string]interface{}{"email": req.Email, "username": req.Username}).Info("user registered")
	return &user, nil
}

// Login checks credentials and stamps the last-login time.
func (uc *AuthUseCase) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	// Only the email format is validated on login
	if msg := validator.GetEmailError(req.Email); msg != "" {
		return nil, apperrors.Validation("email", msg)
	}
	if req.Password == "" {
		return nil, apperrors.Validation("password", "password must not be empty")
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		uc.log.With("email", req.Email).Warn("login failed: unknown email")
		return nil, apperrors.InvalidCredentials()
	}

	if !hash.VerifyPassword(req.Password, user.PasswordHash) {
		uc.log.With("email", req.Email).Warn("login failed: wrong password")
		return nil, apperrors.InvalidCredentials()
	}

	if !user.IsActive {
		uc.log.With("email", req.Email).Warn("login refused: account deactivated")
		return nil, apperrors.AccountDeactivated()
	}

	loginAt := uc.now()
	if err := uc.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, apperrors.Database(err)
	}
	user.LastLogin = &loginAt

	uc.log.With("email", req.Email).Info("login successful")
	return user, nil
}

// RequestReset generates a reset OTP for an existing account, persists it
// stamped with the current time, and returns the code to the caller.
func (uc *AuthUseCase) RequestReset(ctx context.Context, email string) (string, error) {
	if msg := validator.GetEmailError(email); msg != "" {
		return "", apperrors.Validation("email", msg)
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if user == nil {
		return "", apperrors.NotFound("user does not exist")
	}

	code, err := uc.codes.Code()
	if err != nil {
		return "", apperrors.Internal("failed to generate OTP").WithCause(err)
	}

	rec := models.PasswordResetOTP{
		Email:     email,
		OTPCode:   code,
		CreatedAt: uc.now(),
	}
	if _, err := uc.resets.Create(ctx, &rec); err != nil {
		return "", apperrors.Database(err)
	}

	uc.log.With("email", email).Info("password reset OTP generated")
	return code, nil
}

// VerifyOTP checks a code by value alone. Missing codes are invalid; codes
// aged 10 minutes or more are expired.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, code string) error {
	rec, err := uc.resets.FindByCode(ctx, code)
	if err != nil {
		return apperrors.Database(err)
	}
	if rec == nil {
		return apperrors.OTPInvalid()
	}

	if uc.now().Sub(rec.CreatedAt) >= OTPValidity {
		return apperrors.OTPExpired()
	}

	return nil
}

// ResetPassword replaces the stored hash after confirming the two passwords
// match and the account exists.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.User, error) {
	// Mismatch wins over everything else, valid or not.
	if req.NewPassword != req.ConfirmPassword {
		return nil, apperrors.PasswordMismatch()
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found.")
	}

	passwordHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password").WithCause(err)
	}

	if err := uc.users.UpdatePasswordByEmail(ctx, req.Email, passwordHash); err != nil {
		return nil, apperrors.Database(err)
	}
	user.PasswordHash = passwordHash

	uc.log.With("email", req.Email).Info("password reset")
	return user, nil
}
