package adaptor

import (
	"net/http"

	"audioathlete/internal/dto/request"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest

	if err := decodeBody(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create user")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// GetAllUsers handles GET /api/users
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), usecase.DefaultUsersPerPage),
		usecase.DefaultUsersPerPage,
	)

	users, err := h.service.GetAllUsers(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get all users")
		return
	}

	utils.ResponseSuccess(w, users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID.", nil)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// GetMe handles GET /api/users/me, behind the JWT middleware
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, msgAuthRequired)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID.", nil)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	utils.ResponseMessage(w, "User deleted successfully!")
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation, http.StatusBadRequest)
}
