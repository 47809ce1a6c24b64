package order_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, quantity int) order.Line {
	t.Helper()
	price, err := kernel.NewMoney(1999, "USD")
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), "SKU-001", quantity, price)
	require.NoError(t, err)
	return line
}

func mustOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260830-a1b2c3d4e5", kernel.NewUUID(),
		[]order.Line{mustLine(t, 2)})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending unpaid order", func(t *testing.T) {
		id := kernel.NewUUID()
		ownerID := kernel.NewUUID()
		lines := []order.Line{mustLine(t, 2), mustLine(t, 1)}

		o, err := order.NewOrder(id, "ORD-20260830-a1b2c3d4e5", ownerID, lines)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "ORD-20260830-a1b2c3d4e5", o.OrderNumber())
		assert.True(t, o.OwnerID().IsEqual(ownerID))
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
		assert.Len(t, o.Lines(), 2)
		assert.WithinDuration(t, time.Now().UTC(), o.CreatedAt(), time.Second)
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
	})

	t.Run("should fail without lines", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-20260830-a1b2c3d4e5", kernel.NewUUID(), nil)

		require.Error(t, err)
	})

	t.Run("should fail with empty order number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(),
			[]order.Line{mustLine(t, 1)})

		require.Error(t, err)
	})

	t.Run("should fail with unconstructed line", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-20260830-a1b2c3d4e5", kernel.NewUUID(),
			[]order.Line{{}})

		require.Error(t, err)
	})

	t.Run("should copy the lines slice", func(t *testing.T) {
		lines := []order.Line{mustLine(t, 2)}
		o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260830-a1b2c3d4e5", kernel.NewUUID(), lines)
		require.NoError(t, err)

		lines[0] = mustLine(t, 9)

		assert.Equal(t, 2, o.Lines()[0].Quantity())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore status and timestamps", func(t *testing.T) {
		createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
		updatedAt := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-20260201-0011223344", kernel.NewUUID(),
			order.StatusShipped, order.PaymentPaid,
			[]order.Line{mustLine(t, 1)},
			createdAt, updatedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should fail with invalid stored status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-20260201-0011223344", kernel.NewUUID(),
			order.StatusUnknown, order.PaymentUnpaid,
			[]order.Line{mustLine(t, 1)},
			time.Now().UTC(), time.Now().UTC(),
		)

		require.Error(t, err)
	})
}

func TestOrder_StoredStatus(t *testing.T) {
	t.Run("should report pending for new orders", func(t *testing.T) {
		o := mustOrder(t)

		assert.Equal(t, order.StatusPending, o.StoredStatus())
	})

	t.Run("should keep loaded status while in-memory status moves", func(t *testing.T) {
		now := time.Now().UTC()
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-20260201-0011223344", kernel.NewUUID(),
			order.StatusConfirmed, order.PaymentPaid,
			[]order.Line{mustLine(t, 1)},
			now.Add(-time.Hour), now.Add(-time.Hour),
		)
		require.NoError(t, err)

		require.NoError(t, o.TransitionTo(order.StatusProcessing))

		assert.Equal(t, order.StatusProcessing, o.Status())
		assert.Equal(t, order.StatusConfirmed, o.StoredStatus())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := mustOrder(t)

		for _, target := range []order.Status{
			order.StatusConfirmed,
			order.StatusProcessing,
			order.StatusShipped,
			order.StatusDelivered,
		} {
			require.NoError(t, o.TransitionTo(target))
			assert.Equal(t, target, o.Status())
		}
	})

	t.Run("should reject illegal edge and leave order unchanged", func(t *testing.T) {
		o := mustOrder(t)
		before := o.UpdatedAt()

		err := o.TransitionTo(order.StatusShipped)

		require.Error(t, err)
		assert.True(t, errors.Is(err, order.ErrInvalidTransition))
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("should reject refund of unpaid delivered order", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusConfirmed))
		require.NoError(t, o.TransitionTo(order.StatusProcessing))
		require.NoError(t, o.TransitionTo(order.StatusShipped))
		require.NoError(t, o.TransitionTo(order.StatusDelivered))

		err := o.TransitionTo(order.StatusRefunded)

		require.Error(t, err)
		assert.True(t, errors.Is(err, order.ErrInvalidTransition))
	})

	t.Run("should refund paid delivered order and flip payment status", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.TransitionTo(order.StatusConfirmed))
		require.NoError(t, o.TransitionTo(order.StatusProcessing))
		require.NoError(t, o.TransitionTo(order.StatusShipped))
		require.NoError(t, o.TransitionTo(order.StatusDelivered))

		require.NoError(t, o.TransitionTo(order.StatusRefunded))

		assert.Equal(t, order.StatusRefunded, o.Status())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("should reject any transition from cancelled", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.TransitionTo(order.StatusCancelled))

		require.Error(t, o.TransitionTo(order.StatusConfirmed))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})
}

func TestOrder_MarkPaid(t *testing.T) {
	t.Run("should mark unpaid order paid", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.MarkPaid())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("should reject double capture", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.MarkPaid())

		require.Error(t, o.MarkPaid())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})
}

func TestOrder_MarkPaymentFailed(t *testing.T) {
	t.Run("should record failed capture", func(t *testing.T) {
		o := mustOrder(t)

		require.NoError(t, o.MarkPaymentFailed())
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	})

	t.Run("should reject failing a paid order", func(t *testing.T) {
		o := mustOrder(t)
		require.NoError(t, o.MarkPaid())

		require.Error(t, o.MarkPaymentFailed())
	})
}

func TestOrder_IsCancellable(t *testing.T) {
	o := mustOrder(t)
	assert.True(t, o.IsCancellable())

	require.NoError(t, o.TransitionTo(order.StatusConfirmed))
	assert.True(t, o.IsCancellable())

	require.NoError(t, o.TransitionTo(order.StatusProcessing))
	assert.False(t, o.IsCancellable())
}

func TestOrder_IsRefundable(t *testing.T) {
	o := mustOrder(t)
	require.NoError(t, o.MarkPaid())
	assert.False(t, o.IsRefundable())

	require.NoError(t, o.TransitionTo(order.StatusConfirmed))
	require.NoError(t, o.TransitionTo(order.StatusProcessing))
	require.NoError(t, o.TransitionTo(order.StatusShipped))
	require.NoError(t, o.TransitionTo(order.StatusDelivered))
	assert.True(t, o.IsRefundable())
}

func TestOrder_ReservationLines(t *testing.T) {
	t.Run("should project lines into ledger demand", func(t *testing.T) {
		first := mustLine(t, 2)
		second := mustLine(t, 5)
		o, err := order.NewOrder(kernel.NewUUID(), "ORD-20260830-a1b2c3d4e5", kernel.NewUUID(),
			[]order.Line{first, second})
		require.NoError(t, err)

		reservations, err := o.ReservationLines()

		require.NoError(t, err)
		require.Len(t, reservations, 2)
		assert.True(t, reservations[0].ProductID.IsEqual(first.ProductID()))
		assert.Equal(t, 2, reservations[0].Quantity)
		assert.True(t, reservations[1].ProductID.IsEqual(second.ProductID()))
		assert.Equal(t, 5, reservations[1].Quantity)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}
