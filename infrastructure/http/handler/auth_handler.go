package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/infrastructure/http/middleware"
	"github.com/shopcore/shopcore/infrastructure/http/response"
	"github.com/shopcore/shopcore/infrastructure/http/validator"
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
}

func NewAuthHandler(authUseCase inbound.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.BadRequest(w, "Password is required")
		return
	}

	res, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", res)
}

// Logout is not behind RequireAuth: revoking an already-expired token is
// harmless and the original behavior answers 400, not 401, when the header
// is missing.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.ExtractBearerToken(r)
	if !ok {
		response.BadRequest(w, "No token provided")
		return
	}

	if err := h.authUseCase.Logout(r.Context(), token); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User logged out successfully", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateEmail(req.Email) {
		response.BadRequest(w, "Invalid email format")
		return
	}

	if err := h.authUseCase.ForgotPassword(r.Context(), req.Email); err != nil {
		response.AppError(w, err)
		return
	}

	// Identical response whether or not the address is registered.
	response.Success(w, http.StatusOK, "If the email is registered, a reset link has been sent", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ticket := mux.Vars(r)["token"]

	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidatePassword(req.NewPassword) {
		response.BadRequest(w, "Password must be at least 8 characters")
		return
	}

	if err := h.authUseCase.ResetPassword(r.Context(), ticket, req.NewPassword); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Password has been reset successfully", nil)
}

type validateTokenResponse struct {
	Valid bool        `json:"valid"`
	User  interface{} `json:"user,omitempty"`
}

func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.ExtractBearerToken(r)
	if !ok {
		response.WriteJSON(w, http.StatusUnauthorized, false,
			"Authorization header missing or malformed", validateTokenResponse{Valid: false})
		return
	}

	user, err := h.authUseCase.ValidateToken(r.Context(), token)
	if err != nil {
		response.WriteJSON(w, http.StatusUnauthorized, false,
			"Token is expired or invalid", validateTokenResponse{Valid: false})
		return
	}

	response.Success(w, http.StatusOK, "success", validateTokenResponse{
		Valid: true,
		User:  user.Summary(),
	})
}
