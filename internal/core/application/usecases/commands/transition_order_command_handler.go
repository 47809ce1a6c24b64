package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// TransitionOrderCommandHandler drives an order through its lifecycle. The
// aggregate guards the state machine; the handler coordinates the inventory
// side effects (release on cancellation, commit on shipment) and appends the
// history entry, all in one transaction so the order's history stays
// consistent with its transition sequence.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ledger     services.InventoryLedger
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	ledger services.InventoryLedger,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		publisher:  publisher,
	}
}

// Handle processes the transition command and returns the updated order.
// Fails with errs.ErrObjectNotFound for unknown orders and with
// order.ErrInvalidTransition for edges the state table rejects; in both
// cases state and inventory are untouched.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *order.Order
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		updated, err = h.handleOnce(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrVersionIsInvalid) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	h.publishTransition(ctx, updated, cmd)
	return updated, nil
}

func (h TransitionOrderCommandHandler) handleOnce(
	ctx context.Context,
	cmd TransitionOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = h.applyInventoryEffect(ctx, uow, aggregate, cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(
		aggregate.ID(), fromStatus, cmd.TargetStatus(), cmd.Actor(), cmd.Reason())
	if err != nil {
		return nil, err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// applyInventoryEffect maps the transition to its ledger operation:
// cancellation returns reserved units to the shelf, shipment destroys them.
// Refunds deliberately have no inventory effect; restocking returned goods
// is a separate explicit operation.
func (h TransitionOrderCommandHandler) applyInventoryEffect(
	ctx context.Context,
	uow OrderUoW,
	aggregate *order.Order,
	target order.Status,
) error {
	if target != order.StatusCancelled && target != order.StatusShipped {
		return nil
	}

	demand, err := aggregate.ReservationLines()
	if err != nil {
		return err
	}

	switch target {
	case order.StatusCancelled:
		return h.ledger.Release(ctx, uow.InventoryRepository(), demand)
	case order.StatusShipped:
		return h.ledger.Commit(ctx, uow.InventoryRepository(), demand)
	default:
		return nil
	}
}

func (h TransitionOrderCommandHandler) publishTransition(
	ctx context.Context,
	updated *order.Order,
	cmd TransitionOrderCommand,
) {
	if h.publisher == nil {
		return
	}
	_ = h.publisher.Publish(ctx, ports.Event{
		Type:       ports.EventOrderStatusChanged,
		EntityID:   updated.ID().String(),
		Detail:     fmt.Sprintf("%s by %s", cmd.TargetStatus(), cmd.Actor()),
		OccurredAt: time.Now().UTC(),
	})
}
