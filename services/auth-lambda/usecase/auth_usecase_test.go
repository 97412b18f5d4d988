package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/account-auth-services/common/errors"
	"github.com/account-auth-services/common/hash"
	"github.com/account-auth-services/services/auth-lambda/models"
)

// fakeUserStore keeps users in memory, keyed by email.
type fakeUserStore struct {
	byEmail map[string]*models.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range s.byEmail {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) (int64, error) {
	s.nextID++
	copied := *user
	copied.ID = s.nextID
	s.byEmail[user.Email] = &copied
	return s.nextID, nil
}

func (s *fakeUserStore) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) error {
	u, ok := s.byEmail[email]
	if !ok {
		return assert.AnError
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64, at time.Time) error {
	for _, u := range s.byEmail {
		if u.ID == userID {
			u.LastLogin = &at
			return nil
		}
	}
	return assert.AnError
}

// fakeResetStore keeps OTP rows in insertion order.
type fakeResetStore struct {
	recs []models.PasswordResetOTP
}

func (s *fakeResetStore) Create(_ context.Context, rec *models.PasswordResetOTP) (int64, error) {
	copied := *rec
	copied.ID = int64(len(s.recs) + 1)
	s.recs = append(s.recs, copied)
	return copied.ID, nil
}

func (s *fakeResetStore) FindByCode(_ context.Context, code string) (*models.PasswordResetOTP, error) {
	for i := len(s.recs) - 1; i >= 0; i-- {
		if s.recs[i].OTPCode == code {
			copied := s.recs[i]
			return &copied, nil
		}
	}
	return nil, nil
}

// fixedCode always returns the same OTP.
type fixedCode string

func (c fixedCode) Code() (string, error) { return string(c), nil }

func newTestUseCase(t *testing.T) (*AuthUseCase, *fakeUserStore, *fakeResetStore, *time.Time) {
	t.Helper()

	users := newFakeUserStore()
	resets := &fakeResetStore{}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	uc := NewAuthUseCase(users, resets)
	uc.codes = fixedCode("042137")
	uc.now = func() time.Time { return now }

	return uc, users, resets, &now
}

func registerAlice(t *testing.T, uc *AuthUseCase) *models.User {
	t.Helper()
	user, err := uc.Register(context.Background(), models.RegisterRequest{
		Email:    "a@gmail.com",
		Username: "alice",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, users, _, _ := newTestUseCase(t)

		user := registerAlice(t, uc)

		assert.Equal(t, int64(1), user.ID)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsAdmin)
		assert.NotEqual(t, "Passw0rd!", user.PasswordHash)
		assert.True(t, hash.VerifyPassword("Passw0rd!", user.PasswordHash))

		stored, err := users.FindByEmail(context.Background(), "a@gmail.com")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "alice", stored.Username)
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)
		registerAlice(t, uc)

		_, err := uc.Register(context.Background(), models.RegisterRequest{
			Email:    "a@gmail.com",
			Username: "bob",
			Password: "Passw0rd!",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAlreadyExists))
		appErr, _ := apperrors.AsAppError(err)
		assert.Equal(t, "email already exists", appErr.Message)
	})

	t.Run("duplicate username", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)
		registerAlice(t, uc)

		_, err := uc.Register(context.Background(), models.RegisterRequest{
			Email:    "b@gmail.com",
			Username: "alice",
			Password: "Passw0rd!",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAlreadyExists))
	})

	t.Run("validation failures carry the field", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)

		tests := []struct {
			name  string
			req   models.RegisterRequest
			field string
		}{
			{"bad email domain", models.RegisterRequest{Email: "a@yahoo.com", Username: "alice", Password: "Passw0rd!"}, "email"},
			{"mixed case email", models.RegisterRequest{Email: "A@gmail.com", Username: "alice", Password: "Passw0rd!"}, "email"},
			{"username with digit", models.RegisterRequest{Email: "a@gmail.com", Username: "alice1", Password: "Passw0rd!"}, "username"},
			{"weak password", models.RegisterRequest{Email: "a@gmail.com", Username: "alice", Password: "password"}, "password"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Register(context.Background(), tt.req)
				require.Error(t, err)
				appErr, ok := apperrors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
				assert.Equal(t, tt.field, appErr.Field)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("success stamps last login", func(t *testing.T) {
		uc, users, _, now := newTestUseCase(t)
		registerAlice(t, uc)

		user, err := uc.Login(context.Background(), models.LoginRequest{
			Email:    "a@gmail.com",
			Password: "Passw0rd!",
		})
		require.NoError(t, err)
		require.NotNil(t, user.LastLogin)
		assert.Equal(t, *now, *user.LastLogin)

		stored, _ := users.FindByEmail(context.Background(), "a@gmail.com")
		require.NotNil(t, stored.LastLogin)
		assert.Equal(t, *now, *stored.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)
		registerAlice(t, uc)

		_, err := uc.Login(context.Background(), models.LoginRequest{
			Email:    "a@gmail.com",
			Password: "WrongPass1!",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)

		_, err := uc.Login(context.Background(), models.LoginRequest{
			Email:    "ghost@gmail.com",
			Password: "Passw0rd!",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidCredentials))
	})

	t.Run("deactivated account", func(t *testing.T) {
		uc, users, _, _ := newTestUseCase(t)
		registerAlice(t, uc)
		users.byEmail["a@gmail.com"].IsActive = false

		_, err := uc.Login(context.Background(), models.LoginRequest{
			Email:    "a@gmail.com",
			Password: "Passw0rd!",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeAccountDeactivated))
	})

	t.Run("empty password", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)
		registerAlice(t, uc)

		_, err := uc.Login(context.Background(), models.LoginRequest{Email: "a@gmail.com"})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
	})
}

func TestRequestReset(t *testing.T) {
	t.Run("unknown email creates no record", func(t *testing.T) {
		uc, _, resets, _ := newTestUseCase(t)

		_, err := uc.RequestReset(context.Background(), "ghost@gmail.com")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
		assert.Empty(t, resets.recs)
	})

	t.Run("success persists a stamped record", func(t *testing.T) {
		uc, _, resets, now := newTestUseCase(t)
		registerAlice(t, uc)

		code, err := uc.RequestReset(context.Background(), "a@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, "042137", code)
		assert.Len(t, code, 6)

		require.Len(t, resets.recs, 1)
		assert.Equal(t, "a@gmail.com", resets.recs[0].Email)
		assert.Equal(t, *now, resets.recs[0].CreatedAt)
	})

	t.Run("repeated requests stack records", func(t *testing.T) {
		uc, _, resets, _ := newTestUseCase(t)
		registerAlice(t, uc)

		_, err := uc.RequestReset(context.Background(), "a@gmail.com")
		require.NoError(t, err)
		_, err = uc.RequestReset(context.Background(), "a@gmail.com")
		require.NoError(t, err)

		// No one-active-code-per-email rule: both rows live.
		assert.Len(t, resets.recs, 2)
	})
}

func TestVerifyOTP(t *testing.T) {
	t.Run("never generated code is invalid", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)

		err := uc.VerifyOTP(context.Background(), "999999")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOTPInvalid))
	})

	t.Run("fresh code verifies", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)
		registerAlice(t, uc)

		code, err := uc.RequestReset(context.Background(), "a@gmail.com")
		require.NoError(t, err)

		assert.NoError(t, uc.VerifyOTP(context.Background(), code))
	})

	t.Run("expired at exactly ten minutes", func(t *testing.T) {
		uc, _, _, now := newTestUseCase(t)
		registerAlice(t, uc)

		code, err := uc.RequestReset(context.Background(), "a@gmail.com")
		require.NoError(t, err)

		*now = now.Add(OTPValidity - time.Second)
		assert.NoError(t, uc.VerifyOTP(context.Background(), code))

		*now = now.Add(time.Second)
		err = uc.VerifyOTP(context.Background(), code)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOTPExpired))
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("mismatch leaves the hash untouched", func(t *testing.T) {
		uc, users, _, _ := newTestUseCase(t)
		registerAlice(t, uc)
		before := users.byEmail["a@gmail.com"].PasswordHash

		_, err := uc.ResetPassword(context.Background(), models.ResetPasswordRequest{
			Email:           "a@gmail.com",
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass2!",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePasswordMismatch))
		assert.Equal(t, before, users.byEmail["a@gmail.com"].PasswordHash)
	})

	t.Run("mismatch wins even for an unknown email", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)

		_, err := uc.ResetPassword(context.Background(), models.ResetPasswordRequest{
			Email:           "ghost@gmail.com",
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass2!",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePasswordMismatch))
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)

		_, err := uc.ResetPassword(context.Background(), models.ResetPasswordRequest{
			Email:           "ghost@gmail.com",
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass1!",
		})
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "User not found.", appErr.Message)
	})

	t.Run("success replaces the hash", func(t *testing.T) {
		uc, users, _, _ := newTestUseCase(t)
		registerAlice(t, uc)
		before := users.byEmail["a@gmail.com"].PasswordHash

		user, err := uc.ResetPassword(context.Background(), models.ResetPasswordRequest{
			Email:           "a@gmail.com",
			NewPassword:     "NewPass1!",
			ConfirmPassword: "NewPass1!",
		})
		require.NoError(t, err)
		assert.NotEqual(t, before, user.PasswordHash)
		assert.True(t, hash.VerifyPassword("NewPass1!", users.byEmail["a@gmail.com"].PasswordHash))
	})
}

// End-to-end lifecycle: request a code, verify it immediately, then watch it
// expire once eleven minutes pass.
func TestResetLifecycle(t *testing.T) {
	uc, _, _, now := newTestUseCase(t)
	registerAlice(t, uc)

	code, err := uc.RequestReset(context.Background(), "a@gmail.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.NoError(t, uc.VerifyOTP(context.Background(), code))

	*now = now.Add(11 * time.Minute)
	err = uc.VerifyOTP(context.Background(), code)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOTPExpired))
}

func TestDefaultCodeSource(t *testing.T) {
	src := NewCodeSource()
	for i := 0; i < 20; i++ {
		code, err := src.Code()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
	}
}
