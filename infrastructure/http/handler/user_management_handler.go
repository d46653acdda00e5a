package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/infrastructure/http/response"
)

type UserManagementHandler struct {
	users inbound.UserManagementUseCase
}

func NewUserManagementHandler(users inbound.UserManagementUseCase) *UserManagementHandler {
	return &UserManagementHandler{users: users}
}

func (h *UserManagementHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.users.ListUsers(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "success", map[string]interface{}{
		"users": summaries,
	})
}

func (h *UserManagementHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req inbound.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.users.UpdateUser(r.Context(), id, req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", updated)
}

func (h *UserManagementHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}
