package adaptor

import (
	"encoding/json"
	"net/http"

	"audioathlete/internal/usecase"
	"audioathlete/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxBodyBytes      = 1 << 20
	msgInvalidBody    = "Invalid request body."
	msgAuthRequired   = "Authentication required."
	msgInternalServer = "Internal server error"
)

// decodeBody reads a JSON request body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeServiceError maps a service error onto the HTTP status of its kind.
// Reference errors use referenceStatus since endpoints differ on it.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string, referenceStatus int) {
	svcErr, ok := usecase.AsError(err)
	if !ok {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, msgInternalServer)
		return
	}

	switch svcErr.Kind {
	case usecase.KindValidation:
		log.Warn(operation+" validation failed", zap.Error(err), zap.Any("fields", svcErr.Fields))
		utils.ResponseBadRequest(w, svcErr.Message, svcErr.Fields)

	case usecase.KindAuthentication:
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, svcErr.Message)

	case usecase.KindReference:
		log.Warn(operation+" failed - bad reference", zap.Error(err))
		utils.ResponseJSON(w, referenceStatus, utils.ErrorResponse{Error: svcErr.Message})

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, svcErr.Message)

	case usecase.KindConflict:
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, svcErr.Message)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, svcErr.Message)
	}
}
