package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rigpark/escrow-service/internal/application"
	"github.com/rigpark/escrow-service/internal/contracts"
	"github.com/rigpark/escrow-service/internal/domain"
)

type Handler struct{ service *application.Service }

func NewHandler(service *application.Service) *Handler { return &Handler{service: service} }

func (h *Handler) createHold(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	res, err := h.service.CreateHold(r.Context(), actor, application.CreateHoldInput{
		BookingID:   req.BookingID,
		AmountMinor: req.AmountMinor,
		CustomerID:  req.CustomerID,
		LandownerID: req.LandownerID,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "hold created", contracts.CreateHoldResponse{
		EscrowID:       res.EscrowID,
		GatewayHoldRef: res.GatewayHoldRef,
		TransactionID:  res.TransactionID,
		Status:         domain.StatusHeld,
		ReleaseDue:     res.ReleaseDue.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) release(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	escrowID := chi.URLParam(r, "escrow_id")
	res, err := h.service.Release(r.Context(), actor, escrowID)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "release processed", contracts.ReleaseResponse{
		EscrowID:    escrowID,
		Released:    res.Released,
		TransferRef: res.TransferRef,
	})
}

func (h *Handler) forceRelease(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	escrowID := chi.URLParam(r, "escrow_id")
	res, err := h.service.ForceRelease(r.Context(), actor, escrowID)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "force release processed", contracts.ReleaseResponse{
		EscrowID:    escrowID,
		Released:    res.Released,
		TransferRef: res.TransferRef,
	})
}

func (h *Handler) createDispute(w http.ResponseWriter, r *http.Request) {
	var req contracts.DisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	escrowID := chi.URLParam(r, "escrow_id")
	res, err := h.service.Dispute(r.Context(), actor, escrowID, application.DisputeInput{
		RaisedBy:    req.RaisedBy,
		Reason:      req.Reason,
		Description: req.Description,
		Evidence:    req.Evidence,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "dispute created", contracts.DisputeResponse{
		DisputeID: res.DisputeID,
		EscrowID:  escrowID,
		Status:    domain.DisputeOpen,
	})
}

func (h *Handler) sweep(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	res, err := h.service.SweepDueReleases(r.Context(), actor)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "sweep completed", contracts.SweepResponse{
		Attempted: res.Attempted,
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
	})
}

func (h *Handler) getEscrow(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	rec, err := h.service.GetEscrow(r.Context(), actor, chi.URLParam(r, "escrow_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "", toEscrowResponse(rec))
}

func (h *Handler) getDispute(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	dispute, err := h.service.GetDispute(r.Context(), actor, chi.URLParam(r, "dispute_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	resp := contracts.DisputeDetailResponse{
		DisputeID:   dispute.DisputeID,
		EscrowID:    dispute.EscrowID,
		BookingID:   dispute.BookingID,
		AmountMinor: dispute.AmountMinor,
		RaisedBy:    dispute.RaisedBy,
		Reason:      dispute.Reason,
		Description: dispute.Description,
		Status:      dispute.Status,
		Resolution:  dispute.Resolution,
		Timeline:    make([]contracts.DisputeTimelineEntry, 0, len(dispute.Timeline)),
		CreatedAt:   dispute.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, entry := range dispute.Timeline {
		resp.Timeline = append(resp.Timeline, contracts.DisputeTimelineEntry{
			Event:     entry.Event,
			Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
			Details:   entry.Details,
		})
	}
	writeSuccess(w, http.StatusOK, "", resp)
}

func (h *Handler) getTracking(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	rec, err := h.service.GetTracking(r.Context(), actor, strings.TrimSpace(r.URL.Query().Get("transaction_id")))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	resp := contracts.TrackingResponse{
		EscrowID:      rec.EscrowID,
		TransactionID: rec.TransactionID,
		BookingID:     rec.BookingID,
		Status:        rec.Status,
		Attempts:      rec.Attempts,
		LastError:     rec.LastError,
		UpdatedAt:     rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if rec.LastAttempt != nil {
		resp.LastAttempt = rec.LastAttempt.UTC().Format(time.RFC3339)
	}
	writeSuccess(w, http.StatusOK, "", resp)
}

func toEscrowResponse(rec domain.EscrowRecord) contracts.EscrowResponse {
	resp := contracts.EscrowResponse{
		EscrowID:             rec.EscrowID,
		BookingID:            rec.BookingID,
		CustomerID:           rec.CustomerID,
		LandownerID:          rec.LandownerID,
		AmountMinor:          rec.AmountMinor,
		TransactionID:        rec.TransactionID,
		Status:               rec.Status,
		Released:             rec.Released,
		TransferRef:          rec.TransferRef,
		DisputeStatus:        rec.DisputeStatus,
		DisputeID:            rec.DisputeID,
		Attempts:             rec.Tracking.Attempts,
		LastError:            rec.Tracking.LastError,
		RiskLevel:            rec.SecurityChecks.RiskLevel,
		CreatedAt:            rec.CreatedAt.UTC().Format(time.RFC3339),
		ScheduledReleaseDate: rec.ScheduledReleaseDate.UTC().Format(time.RFC3339),
		AuditLog:             make([]contracts.AuditEntryResponse, 0, len(rec.AuditLog)),
	}
	if rec.ReleasedAt != nil {
		resp.ReleasedAt = rec.ReleasedAt.UTC().Format(time.RFC3339)
	}
	for _, entry := range rec.AuditLog {
		resp.AuditLog = append(resp.AuditLog, contracts.AuditEntryResponse{
			Action:    entry.Action,
			Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
			Details:   entry.Details,
		})
	}
	return resp
}
