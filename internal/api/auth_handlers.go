package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/scripturesanctuary/sanctuary-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/signup",
		Summary:       "Sign up",
		Description:   "Creates an account and returns an access token",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Authenticates a user and returns an access token. Attempts are rate limited per client IP.",
		Tags:        []string{"Authentication"},
		Middlewares: huma.Middlewares{s.rateLimited(s.authRateLimiter)},
	}, s.handleLogin)
}

// SignupRequest is the request body for creating an account.
type SignupRequest struct {
	Username  string `json:"username" minLength:"3" maxLength:"50" doc:"Unique username (letters, digits, '_', '.', '-')"`
	Password  string `json:"password" minLength:"8" maxLength:"1024" doc:"Password"`
	Email     string `json:"email" maxLength:"254" doc:"Email address"`
	FirstName string `json:"first_name,omitempty" maxLength:"100" doc:"First name"`
	LastName  string `json:"last_name,omitempty" maxLength:"100" doc:"Last name"`
	ImageURL  string `json:"image_url,omitempty" maxLength:"2048" doc:"Avatar URL"`
}

// SignupInput wraps the signup request for Huma.
type SignupInput struct {
	Body SignupRequest
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" maxLength:"50" doc:"Username"`
	Password string `json:"password" maxLength:"1024" doc:"Password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// AuthResponse contains an access token and the authenticated user.
type AuthResponse struct {
	AccessToken string       `json:"access_token" doc:"PASETO access token"`
	TokenType   string       `json:"token_type" doc:"Always Bearer"`
	ExpiresAt   time.Time    `json:"expires_at" doc:"Token expiry"`
	User        UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

func toAuthOutput(resp *service.AuthResponse) *AuthOutput {
	return &AuthOutput{Body: AuthResponse{
		AccessToken: resp.Value,
		TokenType:   "Bearer",
		ExpiresAt:   resp.ExpiresAt,
		User:        toUserResponse(resp.User),
	}}
}

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Signup(ctx, service.SignupRequest{
		Username:  input.Body.Username,
		Password:  input.Body.Password,
		Email:     input.Body.Email,
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
		ImageURL:  input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return toAuthOutput(resp), nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return toAuthOutput(resp), nil
}
