package domain

const (
	CanonicalEventClassDomain        = "domain"
	CanonicalEventClassAnalyticsOnly = "analytics_only"
)

const (
	EventEscrowHoldCreated    = "escrow.hold_created"
	EventEscrowReleased       = "escrow.released"
	EventEscrowReleaseFailed  = "escrow.release_failed"
	EventEscrowDisputeCreated = "escrow.dispute_created"
)

func IsCanonicalEmittedEvent(eventType string) bool {
	switch eventType {
	case EventEscrowHoldCreated, EventEscrowReleased, EventEscrowReleaseFailed, EventEscrowDisputeCreated:
		return true
	default:
		return false
	}
}

func CanonicalEventClass(eventType string) string {
	switch eventType {
	case EventEscrowReleased, EventEscrowDisputeCreated:
		return CanonicalEventClassDomain
	case EventEscrowHoldCreated, EventEscrowReleaseFailed:
		return CanonicalEventClassAnalyticsOnly
	default:
		return ""
	}
}

func CanonicalPartitionKeyPath(eventType string) string {
	if IsCanonicalEmittedEvent(eventType) {
		return "data.escrow_id"
	}
	return ""
}
