package adaptor

import (
	"net/http"

	"audioathlete/internal/dto/request"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PromptHandler struct {
	service usecase.PromptService
	log     *zap.Logger
}

func NewPromptHandler(service usecase.PromptService, log *zap.Logger) *PromptHandler {
	return &PromptHandler{
		service: service,
		log:     log.With(zap.String("handler", "prompt")),
	}
}

// GetWorkoutPrompts handles GET /api/prompts/{id} where id is the workout
func (h *PromptHandler) GetWorkoutPrompts(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid workout ID.", nil)
		return
	}

	prompts, err := h.service.GetWorkoutPrompts(r.Context(), workoutID)
	if err != nil {
		h.handleServiceError(w, err, "get workout prompts")
		return
	}

	utils.ResponseSuccess(w, prompts)
}

// CreatePrompt handles POST /api/prompts
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromptRequest

	if err := decodeBody(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.CreatePrompt(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create prompt")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// DeletePrompt handles DELETE /api/prompts/{id}
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid prompt ID.", nil)
		return
	}

	if err := h.service.DeletePrompt(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete prompt")
		return
	}

	utils.ResponseMessage(w, "Prompt deleted successfully!")
}

// an unknown parent workout is a 404 on this resource
func (h *PromptHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation, http.StatusNotFound)
}
