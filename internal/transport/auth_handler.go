package transport

import (
	"net/http"

	"hallever/internal/domain"
	"hallever/internal/middleware"
	"hallever/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest is the admin registration payload.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest asks for a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserProfile is the account shape returned to clients.
type UserProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
}

// LoginResponse carries the issued token and the account.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// AuthHandler handles HTTP requests for admin accounts.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// RegisterRoutes mounts the auth endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/routes/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/profile", h.GetProfile)
		})
	})
}

// Register handles admin account creation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))
		respondDecodeError(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password, req.FullName, req.PhoneNumber)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to register account")
		return
	}

	respondData(w, http.StatusCreated, profileOf(user))
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		respondDecodeError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to login")
		return
	}

	h.logger.Info("Admin logged in", zap.String("user_id", user.ID))
	respondData(w, http.StatusOK, LoginResponse{Token: token, User: profileOf(user)})
}

// ForgotPassword records a reset request without revealing account existence.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	if _, err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondServiceError(h.logger, w, err, "failed to record reset request")
		return
	}

	respondData(w, http.StatusAccepted, map[string]string{
		"message": "if the account exists, a reset request has been recorded",
	})
}

// GetProfile returns the authenticated account.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		respondServiceError(h.logger, w, err, "failed to fetch profile")
		return
	}
	respondData(w, http.StatusOK, profileOf(user))
}

func profileOf(user *domain.User) UserProfile {
	return UserProfile{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
	}
}
