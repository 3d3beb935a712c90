package adaptor

import (
	"net/http"

	"audioathlete/internal/dto/request"
	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

// TestHandler serves the connectivity checks under /api/test and /health.
type TestHandler struct {
	service usecase.DiagnosticsService
	log     *zap.Logger
}

func NewTestHandler(service usecase.DiagnosticsService, log *zap.Logger) *TestHandler {
	return &TestHandler{
		service: service,
		log:     log.With(zap.String("handler", "test")),
	}
}

// Probe handles GET /api/test
func (h *TestHandler) Probe(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Probe(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "probe database", http.StatusBadRequest)
		return
	}

	utils.ResponseSuccess(w, resp)
}

// Echo handles POST /api/test
func (h *TestHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var req request.EchoRequest

	if err := decodeBody(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, msgInvalidBody, nil)
		return
	}

	resp, err := h.service.Echo(&req)
	if err != nil {
		writeServiceError(w, h.log, err, "echo", http.StatusBadRequest)
		return
	}

	utils.ResponseSuccess(w, resp)
}

// Health handles GET /health
func (h *TestHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
