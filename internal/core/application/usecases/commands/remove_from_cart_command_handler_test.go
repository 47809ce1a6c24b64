package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveFromCartCommandHandler_Handle(t *testing.T) {
	t.Run("should remove cart line", func(t *testing.T) {
		ctx := t.Context()
		owner := mustGuestOwner(t)
		productID := kernel.NewUUID()
		cmd, err := commands.NewRemoveFromCartCommand(owner, productID)
		require.NoError(t, err)

		repo := &MockCartRepository{}
		uow := &MockCartUoW{}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CartRepository").Return(repo).Once(),
			repo.On("Remove", ctx, owner, productID).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewRemoveFromCartCommandHandler(stubCartUoWFactory{uow: uow})
		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("should report missing line", func(t *testing.T) {
		ctx := t.Context()
		owner := mustGuestOwner(t)
		productID := kernel.NewUUID()
		cmd, err := commands.NewRemoveFromCartCommand(owner, productID)
		require.NoError(t, err)

		repo := &MockCartRepository{}
		uow := &MockCartUoW{}
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("CartRepository").Return(repo).Once(),
			repo.On("Remove", ctx, owner, productID).
				Return(errs.NewObjectNotFoundError("cart line", productID.String())).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewRemoveFromCartCommandHandler(stubCartUoWFactory{uow: uow})
		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail with unconstructed command", func(t *testing.T) {
		handler := commands.NewRemoveFromCartCommandHandler(stubCartUoWFactory{uow: &MockCartUoW{}})

		err := handler.Handle(t.Context(), commands.RemoveFromCartCommand{})

		require.Error(t, err)
		assert.True(t, errors.Is(err, commands.ErrRemoveFromCartCommandIsNotConstructed))
	})
}
