package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrEmptyCart is returned when checkout finds no cart lines for the owner.
// No inventory is touched in that case.
var ErrEmptyCart = errors.New("cart is empty")

// CreateOrderCommandHandler performs checkout: it snapshots the owner's cart,
// reserves inventory for every line through the ledger, freezes unit prices
// from the catalog, creates the order in Pending status with its first
// history entry, and clears the cart, all in a single transaction, so a
// failure at any step rolls the reservation back and never strands reserved
// stock.
//
// Lost races on inventory version checks are retried with a fresh
// transaction; losing every retry surfaces the conflict to the caller.
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	ledger     services.InventoryLedger
	catalog    ports.CatalogClient
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for checkout operations.
func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	ledger services.InventoryLedger,
	catalog ports.CatalogClient,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// Handle processes the checkout command and returns the created order.
// Fails with ErrEmptyCart when the cart has no lines (no ledger calls are
// made), or with inventory.ErrInsufficientStock when any line cannot be
// reserved (no counters change for any line).
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var created *order.Order
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		created, err = h.handleOnce(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrVersionIsInvalid) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	h.publishCreated(ctx, created)
	return created, nil
}

func (h CreateOrderCommandHandler) handleOnce(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	owner, err := kernel.NewUserOwner(cmd.OwnerID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	cartLines, err := cartRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(cartLines) == 0 {
		return nil, ErrEmptyCart
	}

	demand := make([]inventory.ReservationLine, 0, len(cartLines))
	for _, line := range cartLines {
		reservation, resErr := inventory.NewReservationLine(line.ProductID(), line.Quantity())
		if resErr != nil {
			return nil, resErr
		}
		demand = append(demand, reservation)
	}

	if err = h.ledger.Reserve(ctx, uow.InventoryRepository(), demand); err != nil {
		return nil, err
	}

	orderLines, err := h.freezeLines(ctx, cartLines)
	if err != nil {
		return nil, err
	}

	orderNumber, err := order.NewOrderNumber()
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.OrderID(), orderNumber, cmd.OwnerID(), orderLines)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	entry, err := order.NewHistoryEntry(
		created.ID(), order.StatusUnknown, order.StatusPending, cmd.OwnerID().String(), "order created")
	if err != nil {
		return nil, err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = cartRepo.Clear(ctx, owner); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// freezeLines snapshots SKU and unit price from the catalog into immutable
// order lines, preserving the cart's display order.
func (h CreateOrderCommandHandler) freezeLines(
	ctx context.Context,
	cartLines []*cart.Line,
) ([]order.Line, error) {
	orderLines := make([]order.Line, 0, len(cartLines))
	for _, line := range cartLines {
		snapshot, err := h.catalog.GetProduct(ctx, line.ProductID())
		if err != nil {
			return nil, err
		}

		orderLine, err := order.NewLine(line.ProductID(), snapshot.SKU, line.Quantity(), snapshot.Price)
		if err != nil {
			return nil, err
		}
		orderLines = append(orderLines, orderLine)
	}
	return orderLines, nil
}

func (h CreateOrderCommandHandler) publishCreated(ctx context.Context, created *order.Order) {
	if h.publisher == nil {
		return
	}
	_ = h.publisher.Publish(ctx, ports.Event{
		Type:       ports.EventOrderCreated,
		EntityID:   created.ID().String(),
		Detail:     created.OrderNumber(),
		OccurredAt: time.Now().UTC(),
	})
}
