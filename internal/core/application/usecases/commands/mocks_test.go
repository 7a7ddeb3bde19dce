package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func (m *MockOrderRepository) GetAllByRestaurant(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllInStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) CountActiveByRestaurant(ctx context.Context, restaurantID kernel.UUID) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

type MockMetricsRepository struct{ mock.Mock }

func (m *MockMetricsRepository) Append(ctx context.Context, record *metrics.Metric) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMetricsRepository) GetByRestaurant(_ context.Context, _ kernel.UUID, _, _ time.Time) ([]*metrics.Metric, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockMetricsRepository) AverageProcessingMinutes(_ context.Context, _ kernel.UUID) (float64, error) {
	return 0, errors.New("not implemented in mock")
}

// MockUoW satisfies both commands.OrderUoW and commands.UoW.
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

func (m *MockUoW) MetricsRepository() ports.MetricsRepository {
	args := m.Called()
	return args.Get(0).(ports.MetricsRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// stubPublisher records emitted events; publishing never fails.
type stubPublisher struct {
	created        []kernel.UUID
	queued         []kernel.UUID
	statusUpdated  []kernel.UUID
	removed        []kernel.UUID
	metricRecorded int
}

func (s *stubPublisher) PublishOrderCreated(_ context.Context, o *order.Order) error {
	s.created = append(s.created, o.ID())
	return nil
}

func (s *stubPublisher) PublishOrderStatusUpdated(_ context.Context, o *order.Order, _ order.Status) error {
	s.statusUpdated = append(s.statusUpdated, o.ID())
	return nil
}

func (s *stubPublisher) PublishOrderQueued(_ context.Context, o *order.Order) error {
	s.queued = append(s.queued, o.ID())
	return nil
}

func (s *stubPublisher) PublishOrderRemovedFromQueue(_ context.Context, orderID kernel.UUID) error {
	s.removed = append(s.removed, orderID)
	return nil
}

func (s *stubPublisher) PublishMetricsRecorded(_ context.Context, _ *metrics.Metric) error {
	s.metricRecorded++
	return nil
}

// stubStatusCache counts invalidations; lookups always miss.
type stubStatusCache struct {
	invalidated []kernel.UUID
}

func (s *stubStatusCache) Get(_ context.Context, _ kernel.UUID) (*ports.QueueStatusSnapshot, error) {
	return nil, nil
}

func (s *stubStatusCache) Set(_ context.Context, _ ports.QueueStatusSnapshot, _ time.Duration) error {
	return nil
}

func (s *stubStatusCache) Invalidate(_ context.Context, restaurantID kernel.UUID) error {
	s.invalidated = append(s.invalidated, restaurantID)
	return nil
}

func mustItems(t *testing.T) []order.Item {
	t.Helper()
	item, err := order.NewItem("dish", 1, nil, "")
	require.NoError(t, err)
	return []order.Item{item}
}
