package postgres

import (
	"encoding/json"

	"github.com/rigpark/escrow-service/internal/contracts"
	"github.com/rigpark/escrow-service/internal/domain"
	"github.com/rigpark/escrow-service/internal/ports"
)

func toEscrowModel(rec domain.EscrowRecord) escrowModel {
	checks, _ := json.Marshal(rec.SecurityChecks)
	audit, _ := json.Marshal(rec.AuditLog)
	var disputeID *string
	if rec.DisputeID != "" {
		id := rec.DisputeID
		disputeID = &id
	}
	return escrowModel{
		EscrowID:             rec.EscrowID,
		BookingID:            rec.BookingID,
		CustomerID:           rec.CustomerID,
		LandownerID:          rec.LandownerID,
		AmountMinor:          rec.AmountMinor,
		TransactionID:        rec.TransactionID,
		GatewayHoldRef:       rec.GatewayHoldRef,
		Status:               rec.Status,
		Released:             rec.Released,
		ReleasedAt:           rec.ReleasedAt,
		TransferRef:          rec.TransferRef,
		DisputeStatus:        rec.DisputeStatus,
		DisputeID:            disputeID,
		SecurityChecks:       string(checks),
		Attempts:             rec.Tracking.Attempts,
		LastAttempt:          rec.Tracking.LastAttempt,
		LastError:            rec.Tracking.LastError,
		AuditLog:             string(audit),
		CreatedAt:            rec.CreatedAt,
		ScheduledReleaseDate: rec.ScheduledReleaseDate,
		UpdatedAt:            rec.UpdatedAt,
	}
}

func toDomainEscrow(m escrowModel) domain.EscrowRecord {
	var checks domain.SecurityChecks
	_ = json.Unmarshal([]byte(m.SecurityChecks), &checks)
	var audit []domain.AuditEntry
	_ = json.Unmarshal([]byte(m.AuditLog), &audit)
	disputeID := ""
	if m.DisputeID != nil {
		disputeID = *m.DisputeID
	}
	return domain.EscrowRecord{
		EscrowID:       m.EscrowID,
		BookingID:      m.BookingID,
		CustomerID:     m.CustomerID,
		LandownerID:    m.LandownerID,
		AmountMinor:    m.AmountMinor,
		TransactionID:  m.TransactionID,
		GatewayHoldRef: m.GatewayHoldRef,
		Status:         m.Status,
		Released:       m.Released,
		ReleasedAt:     m.ReleasedAt,
		TransferRef:    m.TransferRef,
		DisputeStatus:  m.DisputeStatus,
		DisputeID:      disputeID,
		SecurityChecks: checks,
		Tracking: domain.Tracking{
			Attempts:    m.Attempts,
			LastAttempt: m.LastAttempt,
			LastError:   m.LastError,
		},
		AuditLog:             audit,
		CreatedAt:            m.CreatedAt,
		ScheduledReleaseDate: m.ScheduledReleaseDate,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toDisputeModel(d domain.Dispute) disputeModel {
	evidence, _ := json.Marshal(d.Evidence)
	timeline, _ := json.Marshal(d.Timeline)
	var resolution *string
	if d.Resolution != "" {
		r := d.Resolution
		resolution = &r
	}
	return disputeModel{
		DisputeID:   d.DisputeID,
		EscrowID:    d.EscrowID,
		BookingID:   d.BookingID,
		AmountMinor: d.AmountMinor,
		RaisedBy:    d.RaisedBy,
		Reason:      d.Reason,
		Description: d.Description,
		Status:      d.Status,
		Evidence:    string(evidence),
		Resolution:  resolution,
		Timeline:    string(timeline),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainDispute(m disputeModel) domain.Dispute {
	var evidence []domain.DisputeEvidence
	_ = json.Unmarshal([]byte(m.Evidence), &evidence)
	var timeline []domain.DisputeTimelineEntry
	_ = json.Unmarshal([]byte(m.Timeline), &timeline)
	resolution := ""
	if m.Resolution != nil {
		resolution = *m.Resolution
	}
	return domain.Dispute{
		DisputeID:   m.DisputeID,
		EscrowID:    m.EscrowID,
		BookingID:   m.BookingID,
		AmountMinor: m.AmountMinor,
		RaisedBy:    m.RaisedBy,
		Reason:      m.Reason,
		Description: m.Description,
		Status:      m.Status,
		Evidence:    evidence,
		Resolution:  resolution,
		Timeline:    timeline,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMirrorModel(rec domain.TrackingRecord) trackingMirrorModel {
	return trackingMirrorModel{
		EscrowID:      rec.EscrowID,
		TransactionID: rec.TransactionID,
		BookingID:     rec.BookingID,
		Status:        rec.Status,
		Attempts:      rec.Attempts,
		LastError:     rec.LastError,
		LastAttempt:   rec.LastAttempt,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func toDomainMirror(m trackingMirrorModel) domain.TrackingRecord {
	return domain.TrackingRecord{
		EscrowID:      m.EscrowID,
		TransactionID: m.TransactionID,
		BookingID:     m.BookingID,
		Status:        m.Status,
		Attempts:      m.Attempts,
		LastError:     m.LastError,
		LastAttempt:   m.LastAttempt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toOutboxModel(rec ports.OutboxRecord) outboxModel {
	envelope, _ := json.Marshal(rec.Envelope)
	return outboxModel{
		RecordID:     rec.RecordID,
		EventClass:   rec.EventClass,
		EventType:    rec.Envelope.EventType,
		PartitionKey: rec.Envelope.PartitionKey,
		Envelope:     string(envelope),
		RetryCount:   rec.RetryCount,
		LastError:    rec.LastError,
		CreatedAt:    rec.CreatedAt,
		SentAt:       rec.SentAt,
	}
}

func toOutboxRecord(m outboxModel) ports.OutboxRecord {
	var envelope contracts.EventEnvelope
	_ = json.Unmarshal([]byte(m.Envelope), &envelope)
	return ports.OutboxRecord{
		RecordID:     m.RecordID,
		EventClass:   m.EventClass,
		Envelope:     envelope,
		RetryCount:   m.RetryCount,
		LastError:    m.LastError,
		CreatedAt:    m.CreatedAt,
		SentAt:       m.SentAt,
		DeadLettered: m.DeadLetteredAt != nil,
	}
}
