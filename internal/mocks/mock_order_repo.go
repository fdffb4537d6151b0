package mocks

import (
	"context"

	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type MockOrderRepo struct {
	domain.OrderRepository
	CreateFunc           func(ctx context.Context, order *domain.Order) error
	GetAllByUserIdFunc   func(ctx context.Context, userId int, pagination domain.Pagination) ([]domain.OrderSummary, *domain.Metadata, error)
	GetByIdAndUserIdFunc func(ctx context.Context, orderId, userId int) (*domain.OrderSummary, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.CreateFunc(ctx, order)
}

func (m *MockOrderRepo) GetAllByUserId(ctx context.Context, userId int, pagination domain.Pagination) ([]domain.OrderSummary, *domain.Metadata, error) {
	return m.GetAllByUserIdFunc(ctx, userId, pagination)
}

func (m *MockOrderRepo) GetByIdAndUserId(ctx context.Context, orderId, userId int) (*domain.OrderSummary, error) {
	return m.GetByIdAndUserIdFunc(ctx, orderId, userId)
}
