package usecase

import (
	"context"
	"time"

	"audioathlete/internal/data/repository"
	"audioathlete/internal/dto/request"
	"audioathlete/internal/dto/response"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgCredentialsRequired = "Username and password are required."
	msgInvalidCredentials  = "Invalid username or password."
)

// TokenIssuer mints the bearer token handed out at login.
type TokenIssuer interface {
	Issue(userID int64, role string) (string, time.Time, error)
}

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, issuer TokenIssuer, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	// 1. Validate
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, FieldValidationError(msgCredentialsRequired, errs)
	}

	// 2. Find user by username
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", req.Username))
		return nil, StoreError(err)
	}

	// 3. Same answer for unknown user and wrong password
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, AuthenticationError(msgInvalidCredentials)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, AuthenticationError(msgInvalidCredentials)
	}

	// 4. Issue token
	token, expiresAt, err := s.issuer.Issue(user.ID, string(user.Role))
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, StoreError(err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Time("expires_at", expiresAt),
	)

	return &response.LoginResponse{
		Message:   "Login successful!",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}
