package models

import "time"

// ForgotPasswordRequest asks for a password-reset OTP
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest carries the code to check
type VerifyOTPRequest struct {
	OTPCode string `json:"otp_code"`
}

// ResetPasswordRequest replaces the stored password
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// PasswordResetOTP is one persisted reset code. Several live rows may exist
// for the same email; validity is judged from CreatedAt at read time.
type PasswordResetOTP struct {
	ID        int64     `json:"id" db:"reset_id"`
	Email     string    `json:"email" db:"email"`
	OTPCode   string    `json:"otpCode" db:"otp_code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
