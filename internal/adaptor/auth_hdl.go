package adaptor

import (
	"net/http"

	"audioathlete/internal/dto/request"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := decodeBody(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "login", http.StatusBadRequest)
		return
	}

	utils.ResponseSuccess(w, resp)
}
