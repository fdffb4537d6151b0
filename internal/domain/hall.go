package domain

import "context"

type CinemaHall struct {
	ID         int
	Name       string
	Rows       int
	SeatsInRow int
}

// Capacity is the total number of seats in the hall.
func (h CinemaHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}

type CinemaHallRepository interface {
	GetAll(ctx context.Context) ([]CinemaHall, error)
	GetById(ctx context.Context, id int) (*CinemaHall, error)
	Create(ctx context.Context, hall *CinemaHall) error
	Update(ctx context.Context, hall *CinemaHall) error
	Delete(ctx context.Context, id int) error
}
