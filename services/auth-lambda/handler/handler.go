package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	apperrors "github.com/account-auth-services/common/errors"
	"github.com/account-auth-services/common/logger"
	"github.com/account-auth-services/common/response"
	"github.com/account-auth-services/services/auth-lambda/models"
	"github.com/account-auth-services/services/auth-lambda/usecase"
)

var log = logger.Default()

// AuthHandler handles authentication requests
type AuthHandler struct {
	useCase *usecase.AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(uc *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: uc}
}

// HandleRegister handles POST /api/register
func (h *AuthHandler) HandleRegister(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.RegisterRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return writeEnvelope(http.StatusBadRequest, response.Fail("Invalid request body"))
	}

	if _, err := h.useCase.Register(ctx, req); err != nil {
		return writeError(err)
	}

	return writeEnvelope(http.StatusOK, response.Success("registered successfully"))
}

// HandleLogin handles POST /api/login
func (h *AuthHandler) HandleLogin(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.LoginRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return writeEnvelope(http.StatusBadRequest, response.Fail("Invalid request body"))
	}

	if _, err := h.useCase.Login(ctx, req); err != nil {
		return writeError(err)
	}

	return writeEnvelope(http.StatusOK, response.Success("login successful"))
}

// HandleForgotPassword handles POST /api/forgot-password. The generated OTP
// rides back in the response body; out-of-band delivery is a deliberate
// non-feature of this service.
func (h *AuthHandler) HandleForgotPassword(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.ForgotPasswordRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return writeEnvelope(http.StatusBadRequest, response.Fail("Invalid request body"))
	}

	code, err := h.useCase.RequestReset(ctx, req.Email)
	if err != nil {
		return writeError(err)
	}

	return writeEnvelope(http.StatusOK, response.SuccessWithData(
		"password reset OTP generated",
		map[string]string{"otp_code": code},
	))
}

// HandleVerifyOTP handles POST /api/verify-otp
func (h *AuthHandler) HandleVerifyOTP(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.VerifyOTPRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return writeEnvelope(http.StatusBadRequest, response.Fail("Invalid request body"))
	}

	if err := h.useCase.VerifyOTP(ctx, req.OTPCode); err != nil {
		return writeError(err)
	}

	return writeEnvelope(http.StatusOK, response.Success("OTP verified successfully"))
}

// HandleResetPassword handles POST /api/reset-password
func (h *AuthHandler) HandleResetPassword(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.ResetPasswordRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return writeEnvelope(http.StatusBadRequest, response.Fail("Invalid request body"))
	}

	if _, err := h.useCase.ResetPassword(ctx, req); err != nil {
		return writeError(err)
	}

	return writeEnvelope(http.StatusOK, response.Success("password reset successfully"))
}

// Helper functions

func writeError(err error) (events.APIGatewayProxyResponse, error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		log.WithError(err).Error("unhandled error")
		return writeEnvelope(http.StatusInternalServerError, response.Fail("internal server error"))
	}

	if appErr.Code == apperrors.ErrCodeDatabase || appErr.Code == apperrors.ErrCodeInternal {
		log.WithError(err).Error("request failed")
		return writeEnvelope(appErr.HTTPStatus, response.Fail("internal server error"))
	}

	if appErr.Code == apperrors.ErrCodeValidation && appErr.Field != "" {
		return writeEnvelope(appErr.HTTPStatus, response.FieldErrors(map[string]string{
			appErr.Field: appErr.Message,
		}))
	}

	return writeEnvelope(appErr.HTTPStatus, response.Fail(appErr.Message))
}

func writeEnvelope(statusCode int, resp response.APIResponse) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(resp)

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}
