package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rigpark/escrow-service/internal/contracts"
	"github.com/rigpark/escrow-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, contracts.SuccessResponse{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	writeJSON(w, status, contracts.ErrorResponse{Status: "error", Error: contracts.ErrorPayload{Code: code, Message: message, RequestID: requestID}})
}

func mapDomainError(err error) (int, string) {
	var gatewayErr *domain.GatewayError
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrUnknownParty):
		return http.StatusUnprocessableEntity, "unknown_party"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrAlreadyReleased):
		return http.StatusConflict, "already_released"
	case errors.Is(err, domain.ErrDisputePending):
		return http.StatusConflict, "dispute_pending"
	case errors.Is(err, domain.ErrDisputeExists):
		return http.StatusConflict, "dispute_exists"
	case errors.Is(err, domain.ErrRetriesExhausted):
		return http.StatusConflict, "retries_exhausted"
	case errors.Is(err, domain.ErrHoldingPeriod):
		return http.StatusConflict, "holding_period_active"
	case errors.As(err, &gatewayErr):
		return http.StatusBadGateway, "gateway_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
