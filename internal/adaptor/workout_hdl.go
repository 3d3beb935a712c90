package adaptor

import (
	"net/http"

	"audioathlete/internal/dto/request"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgInvalidWorkoutID   = "Invalid workout ID."
	msgInvalidWorkoutBody = "Missing or invalid required fields."
)

type WorkoutHandler struct {
	service usecase.WorkoutService
	log     *zap.Logger
}

func NewWorkoutHandler(service usecase.WorkoutService, log *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "workout")),
	}
}

// GetWorkouts handles GET /api/workouts
func (h *WorkoutHandler) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), usecase.DefaultWorkoutsPerPage),
		usecase.DefaultWorkoutsPerPage,
	)

	workouts, err := h.service.GetAllWorkouts(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "get workouts")
		return
	}

	utils.ResponseSuccess(w, workouts)
}

// GetWorkout handles GET /api/workouts/{id}
func (h *WorkoutHandler) GetWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, msgInvalidWorkoutID, nil)
		return
	}

	workout, err := h.service.GetWorkout(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get workout")
		return
	}

	utils.ResponseSuccess(w, workout)
}

// CreateWorkout handles POST /api/workouts
func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req request.CreateWorkoutRequest

	// an unparseable scheduledDate fails here
	if err := decodeBody(w, r, &req); err != nil {
		h.log.Warn("Invalid workout body", zap.Error(err))
		utils.ResponseBadRequest(w, msgInvalidWorkoutBody, nil)
		return
	}

	resp, err := h.service.CreateWorkout(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create workout")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// DeleteWorkout handles DELETE /api/workouts/{id}
func (h *WorkoutHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, msgInvalidWorkoutID, nil)
		return
	}

	if err := h.service.DeleteWorkout(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete workout")
		return
	}

	utils.ResponseMessage(w, "Workout deleted successfully!")
}

func (h *WorkoutHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation, http.StatusBadRequest)
}
