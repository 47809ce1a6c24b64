package commands_test

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryInventoryRepository backs the checkout round trip with real counter
// and version semantics so the composed effect of create and cancel on stock
// can be observed through the handlers.
type memoryInventoryRepository struct {
	mu      sync.Mutex
	records map[kernel.UUID]inventoryState
}

type inventoryState struct {
	available int
	reserved  int
	reorder   int
	version   int64
}

func newMemoryInventoryRepository() *memoryInventoryRepository {
	return &memoryInventoryRepository{records: make(map[kernel.UUID]inventoryState)}
}

func (r *memoryInventoryRepository) Add(_ context.Context, record *inventory.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ProductID()] = inventoryState{
		available: record.QuantityAvailable(),
		reserved:  record.QuantityReserved(),
		reorder:   record.ReorderLevel(),
		version:   record.Version(),
	}
	return nil
}

func (r *memoryInventoryRepository) GetByProduct(_ context.Context, productID kernel.UUID) (*inventory.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.restore(productID)
}

func (r *memoryInventoryRepository) GetByProducts(_ context.Context, productIDs []kernel.UUID) ([]*inventory.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*inventory.Record, 0, len(productIDs))
	for _, productID := range productIDs {
		record, err := r.restore(productID)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *memoryInventoryRepository) UpdateCounters(_ context.Context, record *inventory.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.records[record.ProductID()]
	if !ok || state.version != record.Version() {
		return errs.NewVersionIsInvalidErrorWithCause(record.ProductID().String())
	}

	r.records[record.ProductID()] = inventoryState{
		available: record.QuantityAvailable(),
		reserved:  record.QuantityReserved(),
		reorder:   record.ReorderLevel(),
		version:   record.Version() + 1,
	}
	return nil
}

func (r *memoryInventoryRepository) ListBelowReorderLevel(_ context.Context) ([]*inventory.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []*inventory.Record
	for productID, state := range r.records {
		if state.available <= state.reorder {
			record, err := r.restore(productID)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *memoryInventoryRepository) restore(productID kernel.UUID) (*inventory.Record, error) {
	state, ok := r.records[productID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("inventory record", productID.String())
	}
	return inventory.RestoreRecord(productID, state.available, state.reserved, state.reorder, state.version)
}

func seedProduct(t *testing.T, store *memoryInventoryRepository, available int) kernel.UUID {
	t.Helper()
	productID := kernel.NewUUID()
	record, err := inventory.NewRecord(productID, available, 0)
	require.NoError(t, err)
	require.NoError(t, store.Add(t.Context(), record))
	return productID
}

func productCounters(t *testing.T, store *memoryInventoryRepository, productID kernel.UUID) (available, reserved int) {
	t.Helper()
	record, err := store.GetByProduct(t.Context(), productID)
	require.NoError(t, err)
	return record.QuantityAvailable(), record.QuantityReserved()
}

// Checkout followed by cancellation must leave every touched stock record
// exactly where it started.
func TestOrderLifecycle_CancellationRestoresCounters(t *testing.T) {
	ctx := t.Context()
	store := newMemoryInventoryRepository()
	firstProduct := seedProduct(t, store, 10)
	secondProduct := seedProduct(t, store, 5)

	ownerID := kernel.NewUUID()
	owner, err := kernel.NewUserOwner(ownerID)
	require.NoError(t, err)
	firstLine, err := cart.NewLine(kernel.NewUUID(), owner, firstProduct, 2)
	require.NoError(t, err)
	secondLine, err := cart.NewLine(kernel.NewUUID(), owner, secondProduct, 1)
	require.NoError(t, err)

	price, err := kernel.NewMoney(1999, "USD")
	require.NoError(t, err)

	cartRepo := &MockCartRepository{}
	orderRepo := &MockOrderRepository{}
	historyRepo := &MockHistoryRepository{}
	catalog := &MockCatalogClient{}

	checkoutUoW := &MockCheckoutUoW{}
	checkoutUoW.On("Begin", ctx).Return(nil)
	checkoutUoW.On("Commit", ctx).Return(nil)
	checkoutUoW.On("Rollback", ctx).Return(nil)
	checkoutUoW.On("CartRepository").Return(cartRepo)
	checkoutUoW.On("InventoryRepository").Return(store)
	checkoutUoW.On("OrderRepository").Return(orderRepo)
	checkoutUoW.On("HistoryRepository").Return(historyRepo)
	cartRepo.On("ListByOwner", ctx, owner).Return([]*cart.Line{firstLine, secondLine}, nil)
	cartRepo.On("Clear", ctx, owner).Return(nil)
	catalog.On("GetProduct", ctx, firstProduct).
		Return(ports.ProductSnapshot{SKU: "SKU-001", Price: price}, nil)
	catalog.On("GetProduct", ctx, secondProduct).
		Return(ports.ProductSnapshot{SKU: "SKU-002", Price: price}, nil)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	historyRepo.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)

	createHandler := commands.NewCreateOrderCommandHandler(
		stubCheckoutUoWFactory{uow: checkoutUoW}, services.NewInventoryLedger(), catalog, nil)
	createCmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), ownerID)
	require.NoError(t, err)

	created, err := createHandler.Handle(ctx, createCmd)
	require.NoError(t, err)

	available, reserved := productCounters(t, store, firstProduct)
	require.Equal(t, 8, available)
	require.Equal(t, 2, reserved)
	available, reserved = productCounters(t, store, secondProduct)
	require.Equal(t, 4, available)
	require.Equal(t, 1, reserved)

	orderUoW := &MockOrderUoW{}
	orderUoW.On("Begin", ctx).Return(nil)
	orderUoW.On("Commit", ctx).Return(nil)
	orderUoW.On("Rollback", ctx).Return(nil)
	orderUoW.On("OrderRepository").Return(orderRepo)
	orderUoW.On("InventoryRepository").Return(store)
	orderUoW.On("HistoryRepository").Return(historyRepo)
	orderRepo.On("Get", ctx, created.ID()).Return(created, nil)
	orderRepo.On("Update", ctx, created).Return(nil)

	cancelHandler := commands.NewTransitionOrderCommandHandler(
		stubOrderUoWFactory{uow: orderUoW}, services.NewInventoryLedger(), nil)
	cancelCmd, err := commands.NewTransitionOrderCommand(
		created.ID(), order.StatusCancelled, "customer", "changed my mind")
	require.NoError(t, err)

	cancelled, err := cancelHandler.Handle(ctx, cancelCmd)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, cancelled.Status())

	available, reserved = productCounters(t, store, firstProduct)
	assert.Equal(t, 10, available)
	assert.Equal(t, 0, reserved)
	available, reserved = productCounters(t, store, secondProduct)
	assert.Equal(t, 5, available)
	assert.Equal(t, 0, reserved)
}
