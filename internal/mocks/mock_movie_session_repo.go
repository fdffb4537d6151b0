package mocks

import (
	"context"

	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type MockMovieSessionRepo struct {
	domain.MovieSessionRepository
	GetAllFunc  func(ctx context.Context, filters domain.MovieSessionFilters) ([]domain.MovieSessionSummary, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.MovieSessionDetail, error)
	CreateFunc  func(ctx context.Context, session *domain.MovieSession) error
	UpdateFunc  func(ctx context.Context, session *domain.MovieSession) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockMovieSessionRepo) GetAll(ctx context.Context, filters domain.MovieSessionFilters) ([]domain.MovieSessionSummary, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieSessionRepo) GetById(ctx context.Context, id int) (*domain.MovieSessionDetail, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieSessionRepo) Create(ctx context.Context, session *domain.MovieSession) error {
	return m.CreateFunc(ctx, session)
}

func (m *MockMovieSessionRepo) Update(ctx context.Context, session *domain.MovieSession) error {
	return m.UpdateFunc(ctx, session)
}

func (m *MockMovieSessionRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
