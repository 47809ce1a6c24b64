package commands_test

import (
	"errors"
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

type checkoutFixture struct {
	ownerID   kernel.UUID
	owner     kernel.Owner
	productID kernel.UUID
	cartLine  *cart.Line
	record    *inventory.Record
	snapshot  ports.ProductSnapshot
	cmd       commands.CreateOrderCommand
}

func newCheckoutFixture(t *testing.T, quantity, available int) checkoutFixture {
	t.Helper()

	ownerID := kernel.NewUUID()
	owner, err := kernel.NewUserOwner(ownerID)
	require.NoError(t, err)

	productID := kernel.NewUUID()
	cartLine, err := cart.NewLine(kernel.NewUUID(), owner, productID, quantity)
	require.NoError(t, err)

	record, err := inventory.NewRecord(productID, available, 0)
	require.NoError(t, err)

	price, err := kernel.NewMoney(1999, "USD")
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), ownerID)
	require.NoError(t, err)

	return checkoutFixture{
		ownerID:   ownerID,
		owner:     owner,
		productID: productID,
		cartLine:  cartLine,
		record:    record,
		snapshot:  ports.ProductSnapshot{SKU: "SKU-001", Price: price},
		cmd:       cmd,
	}
}

func newCheckoutHandler(
	uow *MockCheckoutUoW,
	catalog *MockCatalogClient,
) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		stubCheckoutUoWFactory{uow: uow},
		services.NewInventoryLedger(),
		catalog,
		nil,
	)
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should create pending order from cart snapshot", func(t *testing.T) {
		ctx := t.Context()
		fx := newCheckoutFixture(t, 2, 10)

		cartRepo := &MockCartRepository{}
		inventoryRepo := &MockInventoryRepository{}
		orderRepo := &MockOrderRepository{}
		historyRepo := &MockHistoryRepository{}
		catalog := &MockCatalogClient{}
		uow := &MockCheckoutUoW{}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CartRepository").Return(cartRepo).Once(),
			cartRepo.On("ListByOwner", ctx, fx.owner).Return([]*cart.Line{fx.cartLine}, nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("GetByProducts", ctx, []kernel.UUID{fx.productID}).
				Return([]*inventory.Record{fx.record}, nil).Once(),
			inventoryRepo.On("UpdateCounters", ctx, fx.record).Return(nil).Once(),
			catalog.On("GetProduct", ctx, fx.productID).Return(fx.snapshot, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			uow.On("HistoryRepository").Return(historyRepo).Once(),
			historyRepo.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
			cartRepo.On("Clear", ctx, fx.owner).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCheckoutHandler(uow, catalog)
		created, err := handler.Handle(ctx, fx.cmd)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, created.ID().IsEqual(fx.cmd.OrderID()))
		assert.True(t, created.OwnerID().IsEqual(fx.ownerID))
		assert.Equal(t, order.StatusPending, created.Status())
		assert.Equal(t, order.PaymentUnpaid, created.PaymentStatus())
		assert.NotEmpty(t, created.OrderNumber())

		require.Len(t, created.Lines(), 1)
		line := created.Lines()[0]
		assert.True(t, line.ProductID().IsEqual(fx.productID))
		assert.Equal(t, "SKU-001", line.SKU())
		assert.Equal(t, 2, line.Quantity())
		assert.Equal(t, int64(1999), line.UnitPrice().Amount())

		assert.Equal(t, 8, fx.record.QuantityAvailable())
		assert.Equal(t, 2, fx.record.QuantityReserved())

		uow.AssertExpectations(t)
		cartRepo.AssertExpectations(t)
		inventoryRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		historyRepo.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("should fail with empty cart before touching inventory", func(t *testing.T) {
		ctx := t.Context()
		fx := newCheckoutFixture(t, 1, 10)

		cartRepo := &MockCartRepository{}
		uow := &MockCheckoutUoW{}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CartRepository").Return(cartRepo).Once(),
			cartRepo.On("ListByOwner", ctx, fx.owner).Return([]*cart.Line{}, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCheckoutHandler(uow, &MockCatalogClient{})
		created, err := handler.Handle(ctx, fx.cmd)

		require.Error(t, err)
		assert.True(t, errors.Is(err, commands.ErrEmptyCart))
		assert.Nil(t, created)
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "InventoryRepository")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject checkout when stock is short", func(t *testing.T) {
		ctx := t.Context()
		fx := newCheckoutFixture(t, 5, 3)

		cartRepo := &MockCartRepository{}
		inventoryRepo := &MockInventoryRepository{}
		uow := &MockCheckoutUoW{}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CartRepository").Return(cartRepo).Once(),
			cartRepo.On("ListByOwner", ctx, fx.owner).Return([]*cart.Line{fx.cartLine}, nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("GetByProducts", ctx, []kernel.UUID{fx.productID}).
				Return([]*inventory.Record{fx.record}, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCheckoutHandler(uow, &MockCatalogClient{})
		created, err := handler.Handle(ctx, fx.cmd)

		require.Error(t, err)
		assert.True(t, errors.Is(err, inventory.ErrInsufficientStock))
		assert.Nil(t, created)
		inventoryRepo.AssertNotCalled(t, "UpdateCounters", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("should roll back when a product vanished from the catalog", func(t *testing.T) {
		ctx := t.Context()
		fx := newCheckoutFixture(t, 2, 10)

		cartRepo := &MockCartRepository{}
		inventoryRepo := &MockInventoryRepository{}
		catalog := &MockCatalogClient{}
		uow := &MockCheckoutUoW{}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CartRepository").Return(cartRepo).Once(),
			cartRepo.On("ListByOwner", ctx, fx.owner).Return([]*cart.Line{fx.cartLine}, nil).Once(),
			uow.On("InventoryRepository").Return(inventoryRepo).Once(),
			inventoryRepo.On("GetByProducts", ctx, []kernel.UUID{fx.productID}).
				Return([]*inventory.Record{fx.record}, nil).Once(),
			inventoryRepo.On("UpdateCounters", ctx, fx.record).Return(nil).Once(),
			catalog.On("GetProduct", ctx, fx.productID).
				Return(ports.ProductSnapshot{}, errs.NewObjectNotFoundError("product", fx.productID.String())).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := newCheckoutHandler(uow, catalog)
		created, err := handler.Handle(ctx, fx.cmd)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
		assert.Nil(t, created)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("should surface the conflict after exhausting retries", func(t *testing.T) {
		ctx := t.Context()
		fx := newCheckoutFixture(t, 2, 10)

		cartRepo := &MockCartRepository{}
		inventoryRepo := &MockInventoryRepository{}
		uow := &MockCheckoutUoW{}
		uow.On("Begin", ctx).Return(nil).Times(3)
		uow.On("CartRepository").Return(cartRepo).Times(3)
		cartRepo.On("ListByOwner", ctx, fx.owner).Return([]*cart.Line{fx.cartLine}, nil).Times(3)
		uow.On("InventoryRepository").Return(inventoryRepo).Times(3)
		inventoryRepo.On("GetByProducts", ctx, []kernel.UUID{fx.productID}).
			Return([]*inventory.Record{fx.record}, nil).Times(3)
		inventoryRepo.On("UpdateCounters", ctx, fx.record).
			Return(errs.NewVersionIsInvalidErrorWithCause(fx.productID.String())).Times(3)
		uow.On("Rollback", ctx).Return(nil).Times(3)

		handler := newCheckoutHandler(uow, &MockCatalogClient{})
		created, err := handler.Handle(ctx, fx.cmd)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrVersionIsInvalid))
		assert.Nil(t, created)
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail with unconstructed command", func(t *testing.T) {
		handler := newCheckoutHandler(&MockCheckoutUoW{}, &MockCatalogClient{})

		created, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, commands.ErrCreateOrderCommandIsNotConstructed))
		assert.Nil(t, created)
	})
}
