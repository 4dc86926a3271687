package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGroupRepository struct{ mock.Mock }

func (m *MockGroupRepository) Add(ctx context.Context, g *ordergroup.OrderGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Update(ctx context.Context, g *ordergroup.OrderGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Get(ctx context.Context, id kernel.UUID) (*ordergroup.OrderGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordergroup.OrderGroup), args.Error(1)
}

func (m *MockGroupRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ordergroup.OrderGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordergroup.OrderGroup), args.Error(1)
}

func (m *MockGroupRepository) GetStatusesByOrder(ctx context.Context, orderID kernel.UUID) ([]ordergroup.Status, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordergroup.Status), args.Error(1)
}

func (m *MockGroupRepository) GetIDsByOrder(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockGroupRepository) AddService(ctx context.Context, s *ordergroup.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockGroupRepository) UpdateService(ctx context.Context, s *ordergroup.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockGroupRepository) GetService(ctx context.Context, id kernel.UUID) (*ordergroup.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordergroup.Service), args.Error(1)
}

func (m *MockGroupRepository) GetServiceStatusesByGroup(
	ctx context.Context,
	groupID kernel.UUID,
) ([]ordergroup.Status, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordergroup.Status), args.Error(1)
}

func (m *MockGroupRepository) PurgeService(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGroupRepository) GetOrderIDsTouchedSince(ctx context.Context, since time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderGroupRepository() ports.OrderGroupRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderGroupRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// RecordingNotifier captures dispatched transitions so tests can assert on
// exactly what left the transaction boundary.
type RecordingNotifier struct {
	dispatched [][]services.StatusTransition
}

func (n *RecordingNotifier) Dispatch(_ context.Context, transitions []services.StatusTransition) {
	if len(transitions) == 0 {
		return
	}
	n.dispatched = append(n.dispatched, transitions)
}

func (n *RecordingNotifier) All() []services.StatusTransition {
	var all []services.StatusTransition
	for _, batch := range n.dispatched {
		all = append(all, batch...)
	}
	return all
}
