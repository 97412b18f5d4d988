package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/account-auth-services/common/config"
	"github.com/account-auth-services/common/db"
	"github.com/account-auth-services/services/auth-lambda/handler"
	"github.com/account-auth-services/services/auth-lambda/repository"
	"github.com/account-auth-services/services/auth-lambda/usecase"
)

var authHandler *handler.AuthHandler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.InitDB(cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	conn := db.GetDB()
	uc := usecase.NewAuthUseCase(
		repository.NewUserRepository(conn),
		repository.NewPasswordResetRepository(conn),
	)
	authHandler = handler.NewAuthHandler(uc)
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Route based on path and method
	path := request.Path
	method := request.HTTPMethod

	switch {
	case path == "/api/register" && method == "POST":
		return authHandler.HandleRegister(ctx, request)

	case path == "/api/login" && method == "POST":
		return authHandler.HandleLogin(ctx, request)

	case path == "/api/forgot-password" && method == "POST":
		return authHandler.HandleForgotPassword(ctx, request)

	case path == "/api/verify-otp" && method == "POST":
		return authHandler.HandleVerifyOTP(ctx, request)

	case path == "/api/reset-password" && method == "POST":
		return authHandler.HandleResetPassword(ctx, request)

	default:
		return events.APIGatewayProxyResponse{
			StatusCode: 404,
			Body:       `{"status":false,"message":"Not Found"}`,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
		}, nil
	}
}

func main() {
	lambda.Start(Handler)
}
