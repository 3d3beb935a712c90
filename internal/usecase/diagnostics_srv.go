package usecase

import (
	"context"
	"fmt"

	"audioathlete/internal/data/repository"
	"audioathlete/internal/dto/request"
	"audioathlete/internal/dto/response"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

const msgEchoRequired = "Message is required."

// DiagnosticsService backs the connectivity check endpoints.
type DiagnosticsService interface {
	Probe(ctx context.Context) (*response.ProbeResponse, error)
	Echo(req *request.EchoRequest) (*utils.MessageResponse, error)
}

type diagnosticsService struct {
	health repository.HealthRepository
	log    *zap.Logger
}

func NewDiagnosticsService(health repository.HealthRepository, log *zap.Logger) DiagnosticsService {
	return &diagnosticsService{
		health: health,
		log:    log.With(zap.String("service", "diagnostics")),
	}
}

func (s *diagnosticsService) Probe(ctx context.Context) (*response.ProbeResponse, error) {
	value, err := s.health.Probe(ctx)
	if err != nil {
		s.log.Error("Database probe failed", zap.Error(err))
		return nil, StoreError(err)
	}
	return &response.ProbeResponse{Test: value}, nil
}

func (s *diagnosticsService) Echo(req *request.EchoRequest) (*utils.MessageResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, FieldValidationError(msgEchoRequired, errs)
	}
	return &utils.MessageResponse{Message: fmt.Sprintf("Received: %s", req.Message)}, nil
}
