package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// SystemActor is the changedBy value recorded for transitions initiated by
// background jobs rather than a user or operator.
const SystemActor = "system"

// HistoryEntry is one append-only record of a status transition. The initial
// creation transition is recorded as (StatusUnknown -> StatusPending).
// Entries are never updated or deleted; ordered by insertion they reconstruct
// the exact sequence of statuses an order passed through.
type HistoryEntry struct {
	orderID    kernel.UUID
	fromStatus Status
	toStatus   Status
	changedBy  string
	reason     string
	createdAt  time.Time
}

// NewHistoryEntry creates a history entry stamped with the current time.
// fromStatus may be StatusUnknown for the creation entry; toStatus must be a
// valid status and changedBy must be non-empty. reason is optional.
func NewHistoryEntry(
	orderID kernel.UUID,
	fromStatus, toStatus Status,
	changedBy, reason string,
) (*HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := toStatus.Validate(); err != nil {
		return nil, err
	}
	if changedBy == "" {
		return nil, errs.NewValueIsRequiredError("changedBy")
	}

	return &HistoryEntry{
		orderID:    orderID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		changedBy:  changedBy,
		reason:     reason,
		createdAt:  time.Now().UTC(),
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence with its
// original timestamp.
func RestoreHistoryEntry(
	orderID kernel.UUID,
	fromStatus, toStatus Status,
	changedBy, reason string,
	createdAt time.Time,
) (*HistoryEntry, error) {
	entry, err := NewHistoryEntry(orderID, fromStatus, toStatus, changedBy, reason)
	if err != nil {
		return nil, err
	}
	entry.createdAt = createdAt
	return entry, nil
}

// OrderID returns the order the entry belongs to.
func (e *HistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// FromStatus returns the status before the transition, StatusUnknown for the
// creation entry.
func (e *HistoryEntry) FromStatus() Status {
	return e.fromStatus
}

// ToStatus returns the status after the transition.
func (e *HistoryEntry) ToStatus() Status {
	return e.toStatus
}

// ChangedBy returns the actor that triggered the transition.
func (e *HistoryEntry) ChangedBy() string {
	return e.changedBy
}

// Reason returns the optional free-text reason for the transition.
func (e *HistoryEntry) Reason() string {
	return e.reason
}

// CreatedAt returns when the transition was recorded.
func (e *HistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}
