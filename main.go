package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/account-auth-services/common/config"
	"github.com/account-auth-services/common/db"
	"github.com/account-auth-services/common/logger"
	authhandler "github.com/account-auth-services/services/auth-lambda/handler"
	"github.com/account-auth-services/services/auth-lambda/repository"
	"github.com/account-auth-services/services/auth-lambda/usecase"
)

// Local development entry point. Each handler is written against the
// API Gateway proxy event shape, so the plain HTTP server adapts
// requests into that shape before dispatching.

type lambdaHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func adaptRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return events.APIGatewayProxyRequest{}, err
	}
	defer r.Body.Close()

	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return events.APIGatewayProxyRequest{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func route(log *logger.Logger, handle lambdaHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		event, err := adaptRequest(r)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		resp, err := handle(r.Context(), event)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		writeResponse(w, resp)

		log.LogRequest(logger.RequestLog{
			Method:    r.Method,
			Path:      r.URL.Path,
			Status:    resp.StatusCode,
			Duration:  time.Since(start),
			ClientIP:  clientIP(r),
			RequestID: uuid.NewString(),
		})
	}
}

func main() {
	_ = godotenv.Load()

	log := logger.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: %v", err)
	}

	if err := db.InitDB(cfg.Database); err != nil {
		log.Fatal("failed to init database: %v", err)
	}
	defer db.CloseDB()

	users := repository.NewUserRepository(db.GetDB())
	resets := repository.NewPasswordResetRepository(db.GetDB())
	uc := usecase.NewAuthUseCase(users, resets)
	h := authhandler.NewAuthHandler(uc)

	http.HandleFunc("/api/register", route(log, h.HandleRegister))
	http.HandleFunc("/api/login", route(log, h.HandleLogin))
	http.HandleFunc("/api/forgot-password", route(log, h.HandleForgotPassword))
	http.HandleFunc("/api/verify-otp", route(log, h.HandleVerifyOTP))
	http.HandleFunc("/api/reset-password", route(log, h.HandleResetPassword))

	log.Info("auth service listening on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, nil); err != nil {
		log.Fatal("server stopped: %v", err)
	}
}
