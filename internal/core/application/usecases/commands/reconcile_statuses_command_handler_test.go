package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileStatusesCommandHandler_Handle_ConsistentTreeWritesNothing(t *testing.T) {
	ctx := context.Background()

	groupID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	placedBy := kernel.NewUUID()

	testGroup, err := ordergroup.RestoreOrderGroup(groupID, orderID, providerID, ordergroup.Accepted)
	require.NoError(t, err)
	testOrder, err := order.RestoreOrder(orderID, placedBy, order.Confirmed)
	require.NoError(t, err)

	cmd, err := commands.NewReconcileStatusesCommand(time.Hour)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	groupRepo := new(MockGroupRepository)

	// First transaction scans for touched orders, second walks the tree.
	scanUoW := new(MockUoW)
	scanUoW.On("OrderGroupRepository").Return(groupRepo)
	mock.InOrder(
		scanUoW.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetOrderIDsTouchedSince", ctx, mock.AnythingOfType("time.Time")).
			Return([]kernel.UUID{orderID}, nil).Once(),
		scanUoW.On("Commit", ctx).Return(nil).Once(),
		scanUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	treeUoW := new(MockUoW)
	treeUoW.On("OrderRepository").Return(orderRepo)
	treeUoW.On("OrderGroupRepository").Return(groupRepo)
	mock.InOrder(
		treeUoW.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetIDsByOrder", ctx, orderID).Return([]kernel.UUID{groupID}, nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID).Return(testGroup, nil).Once(),
		groupRepo.On("GetServiceStatusesByGroup", ctx, groupID).
			Return([]ordergroup.Status{ordergroup.Accepted}, nil).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		groupRepo.On("GetStatusesByOrder", ctx, orderID).
			Return([]ordergroup.Status{ordergroup.Accepted}, nil).Once(),
		treeUoW.On("Commit", ctx).Return(nil).Once(),
		treeUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(treeUoW).Once()

	notifier := new(RecordingNotifier)
	handler := commands.NewReconcileStatusesCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	groupRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	groupRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, notifier.All())
}

func TestReconcileStatusesCommandHandler_Handle_RepairsDriftedOrder(t *testing.T) {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	placedBy := kernel.NewUUID()

	// The order has no groups but somehow left Draft. Reconciliation
	// derives the empty-set status and repairs it.
	testOrder, err := order.RestoreOrder(orderID, placedBy, order.PendingAgencyConfirmation)
	require.NoError(t, err)

	cmd, err := commands.NewReconcileStatusesCommand(time.Hour)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	groupRepo := new(MockGroupRepository)

	scanUoW := new(MockUoW)
	scanUoW.On("OrderGroupRepository").Return(groupRepo)
	mock.InOrder(
		scanUoW.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetOrderIDsTouchedSince", ctx, mock.AnythingOfType("time.Time")).
			Return([]kernel.UUID{orderID}, nil).Once(),
		scanUoW.On("Commit", ctx).Return(nil).Once(),
		scanUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	treeUoW := new(MockUoW)
	treeUoW.On("OrderRepository").Return(orderRepo)
	treeUoW.On("OrderGroupRepository").Return(groupRepo)
	mock.InOrder(
		treeUoW.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetIDsByOrder", ctx, orderID).Return([]kernel.UUID{}, nil).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		groupRepo.On("GetStatusesByOrder", ctx, orderID).Return([]ordergroup.Status{}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		treeUoW.On("Commit", ctx).Return(nil).Once(),
		treeUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(treeUoW).Once()

	notifier := new(RecordingNotifier)
	handler := commands.NewReconcileStatusesCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)

	transitions := notifier.All()
	require.Len(t, transitions, 1)
	assert.Equal(t, services.NodeKindOrder, transitions[0].Kind)
	assert.Equal(t, "PendingAgencyConfirmation", transitions[0].From)
	assert.Equal(t, "Draft", transitions[0].To)
}

func TestReconcileStatusesCommandHandler_Handle_RepairsTwoDriftedGroupsOfOneOrder(t *testing.T) {
	ctx := context.Background()

	groupID1 := kernel.NewUUID()
	groupID2 := kernel.NewUUID()
	orderID := kernel.NewUUID()
	providerID := kernel.NewUUID()
	placedBy := kernel.NewUUID()

	// Both groups drifted: stored Pending, derived Accepted. The sweep must
	// repair both under their group locks and only then lock the order,
	// exactly once. Taking the order lock between the two group recomputes
	// would invert the group-before-order lock order against a concurrent
	// service mutation on the second group.
	testGroup1, err := ordergroup.RestoreOrderGroup(groupID1, orderID, providerID, ordergroup.Pending)
	require.NoError(t, err)
	testGroup2, err := ordergroup.RestoreOrderGroup(groupID2, orderID, providerID, ordergroup.Pending)
	require.NoError(t, err)
	testOrder, err := order.RestoreOrder(orderID, placedBy, order.PendingAgencyConfirmation)
	require.NoError(t, err)

	cmd, err := commands.NewReconcileStatusesCommand(time.Hour)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	groupRepo := new(MockGroupRepository)

	scanUoW := new(MockUoW)
	scanUoW.On("OrderGroupRepository").Return(groupRepo)
	mock.InOrder(
		scanUoW.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetOrderIDsTouchedSince", ctx, mock.AnythingOfType("time.Time")).
			Return([]kernel.UUID{orderID}, nil).Once(),
		scanUoW.On("Commit", ctx).Return(nil).Once(),
		scanUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	treeUoW := new(MockUoW)
	treeUoW.On("OrderRepository").Return(orderRepo)
	treeUoW.On("OrderGroupRepository").Return(groupRepo)
	mock.InOrder(
		treeUoW.On("Begin", ctx).Return(nil).Once(),
		groupRepo.On("GetIDsByOrder", ctx, orderID).Return([]kernel.UUID{groupID1, groupID2}, nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID1).Return(testGroup1, nil).Once(),
		groupRepo.On("GetServiceStatusesByGroup", ctx, groupID1).
			Return([]ordergroup.Status{ordergroup.Accepted}, nil).Once(),
		groupRepo.On("Update", ctx, mock.AnythingOfType("*ordergroup.OrderGroup")).Return(nil).Once(),
		groupRepo.On("GetForUpdate", ctx, groupID2).Return(testGroup2, nil).Once(),
		groupRepo.On("GetServiceStatusesByGroup", ctx, groupID2).
			Return([]ordergroup.Status{ordergroup.Accepted}, nil).Once(),
		groupRepo.On("Update", ctx, mock.AnythingOfType("*ordergroup.OrderGroup")).Return(nil).Once(),
		orderRepo.On("GetForUpdate", ctx, orderID).Return(testOrder, nil).Once(),
		groupRepo.On("GetStatusesByOrder", ctx, orderID).
			Return([]ordergroup.Status{ordergroup.Accepted, ordergroup.Accepted}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		treeUoW.On("Commit", ctx).Return(nil).Once(),
		treeUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(scanUoW).Once()
	factory.On("Create").Return(treeUoW).Once()

	notifier := new(RecordingNotifier)
	handler := commands.NewReconcileStatusesCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	groupRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNumberOfCalls(t, "GetForUpdate", 1)

	transitions := notifier.All()
	require.Len(t, transitions, 3)

	assert.Equal(t, services.NodeKindOrderGroup, transitions[0].Kind)
	assert.Equal(t, groupID1, transitions[0].NodeID)
	assert.Equal(t, placedBy, transitions[0].PlacedBy)
	assert.Equal(t, "Pending", transitions[0].From)
	assert.Equal(t, "Accepted", transitions[0].To)

	assert.Equal(t, services.NodeKindOrderGroup, transitions[1].Kind)
	assert.Equal(t, groupID2, transitions[1].NodeID)
	assert.Equal(t, placedBy, transitions[1].PlacedBy)

	assert.Equal(t, services.NodeKindOrder, transitions[2].Kind)
	assert.Equal(t, orderID, transitions[2].NodeID)
	assert.Equal(t, "PendingAgencyConfirmation", transitions[2].From)
	assert.Equal(t, "Confirmed", transitions[2].To)
}

func TestNewReconcileStatusesCommand_InvalidWindow(t *testing.T) {
	_, err := commands.NewReconcileStatusesCommand(0)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewReconcileStatusesCommand(-time.Minute)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
