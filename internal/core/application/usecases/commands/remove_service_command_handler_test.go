package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveServiceCommandHandler_Handle_SoftDeleteLastService(t *testing.T) {
	ctx := context.Background()

	serviceID := kernel.NewUUID()
	groupID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	placedBy := kernel.NewUUID()

	testService, err := ordergroup.RestoreService(serviceID, groupID, ordergroup.Rejected, mustTestPrice(t), false)
	require.NoError(t, err)
	testGroup, err := ordergroup.RestoreOrderGroup(groupID, orderID, providerID, ordergroup.Rejected)
	require.NoError(t, err)
	testOrder, err := order.RestoreOrder(orderID, placedBy, order.Cancelled)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveServiceCommand(serviceID, false)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	groupRepo := new(MockGroupRepository)
	uow := new(MockUoW)

	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OrderGroupRepository").Return(groupRepo)

	var updated *ordergroup.Service
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(testService, nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(testService, nil).Once(),
		groupRepo.On("UpdateService", ctx, mock.AnythingOfType("*ordergroup.Service")).
			Run(func(args mock.Arguments) { updated = args.Get(1).(*ordergroup.Service) }).
			Return(nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		// Removing the only rejected service empties the live set.
		groupRepo.On("GetServiceStatusesByGroup", ctx, groupID).Return([]ordergroup.Status{}, nil).Once(),
		groupRepo.On("Update", ctx, mock.AnythingOfType("*ordergroup.OrderGroup")).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		groupRepo.On("GetStatusesByOrder", ctx, orderID).
			Return([]ordergroup.Status{ordergroup.Pending}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	handler := commands.NewRemoveServiceCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	groupRepo.AssertExpectations(t)
	groupRepo.AssertNotCalled(t, "PurgeService", mock.Anything, mock.Anything)

	// The delete was a soft one.
	require.NotNil(t, updated)
	assert.True(t, updated.IsDeleted())

	transitions := notifier.All()
	require.Len(t, transitions, 2)
	assert.Equal(t, "Rejected", transitions[0].From)
	assert.Equal(t, "Pending", transitions[0].To)
	assert.Equal(t, services.NodeKindOrder, transitions[1].Kind)
	assert.Equal(t, "Cancelled", transitions[1].From)
	assert.Equal(t, "PendingAgencyConfirmation", transitions[1].To)
}

func TestRemoveServiceCommandHandler_Handle_PermanentPurge(t *testing.T) {
	ctx := context.Background()

	serviceID := kernel.NewUUID()
	groupID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()

	testService, err := ordergroup.RestoreService(serviceID, groupID, ordergroup.Accepted, mustTestPrice(t), false)
	require.NoError(t, err)
	testGroup, err := ordergroup.RestoreOrderGroup(groupID, orderID, providerID, ordergroup.Accepted)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveServiceCommand(serviceID, true)
	require.NoError(t, err)

	groupRepo := new(MockGroupRepository)
	uow := new(MockUoW)

	uow.On("OrderGroupRepository").Return(groupRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(testService, nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(testService, nil).Once(),
		groupRepo.On("PurgeService", ctx, serviceID).Return(nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		// A sibling keeps the group in Accepted: no cascade write.
		groupRepo.On("GetServiceStatusesByGroup", ctx, groupID).
			Return([]ordergroup.Status{ordergroup.Accepted}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(RecordingNotifier)
	handler := commands.NewRemoveServiceCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	groupRepo.AssertExpectations(t)
	groupRepo.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.All())
}

func TestRemoveServiceCommandHandler_Handle_DeleteCommittedWhileWaitingForLock(t *testing.T) {
	ctx := context.Background()

	serviceID := kernel.NewUUID()
	groupID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()

	// A concurrent delete committed while this transaction waited for the
	// group lock. The post-lock re-read sees it and the handler bails out
	// instead of soft-deleting the pre-lock copy again.
	liveService, err := ordergroup.RestoreService(serviceID, groupID, ordergroup.Pending, mustTestPrice(t), false)
	require.NoError(t, err)
	deletedService, err := ordergroup.RestoreService(serviceID, groupID, ordergroup.Pending, mustTestPrice(t), true)
	require.NoError(t, err)
	testGroup, err := ordergroup.RestoreOrderGroup(groupID, orderID, providerID, ordergroup.Pending)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveServiceCommand(serviceID, false)
	require.NoError(t, err)

	groupRepo := new(MockGroupRepository)
	uow := new(MockUoW)

	uow.On("OrderGroupRepository").Return(groupRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(liveService, nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(deletedService, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemoveServiceCommandHandler(factory, commands.NopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ordergroup.ErrServiceAlreadyDeleted)
	groupRepo.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRemoveServiceCommandHandler_Handle_AlreadyDeleted(t *testing.T) {
	ctx := context.Background()

	serviceID := kernel.NewUUID()
	groupID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()

	testService, err := ordergroup.RestoreService(serviceID, groupID, ordergroup.Pending, mustTestPrice(t), true)
	require.NoError(t, err)
	testGroup, err := ordergroup.RestoreOrderGroup(groupID, orderID, providerID, ordergroup.Pending)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveServiceCommand(serviceID, false)
	require.NoError(t, err)

	groupRepo := new(MockGroupRepository)
	uow := new(MockUoW)

	uow.On("OrderGroupRepository").Return(groupRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(testService, nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		groupRepo.On("GetService", ctx, serviceID).Return(testService, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRemoveServiceCommandHandler(factory, commands.NopNotifier{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ordergroup.ErrServiceAlreadyDeleted)
	groupRepo.AssertNotCalled(t, "UpdateService", mock.Anything, mock.Anything)
}
