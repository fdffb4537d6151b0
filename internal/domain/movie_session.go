package domain

import (
	"context"
	"time"
)

type MovieSession struct {
	ID           int
	ShowTime     time.Time
	MovieID      int
	CinemaHallID int
}

// MovieSessionSummary is the list representation of a movie session.
// TicketsAvailable is derived from hall capacity and booked ticket count at
// query time; it is never persisted.
type MovieSessionSummary struct {
	ID                 int
	ShowTime           time.Time
	MovieTitle         string
	CinemaHallName     string
	CinemaHallCapacity int
	TicketsAvailable   int
}

type SeatRef struct {
	Row  int
	Seat int
}

type MovieSessionDetail struct {
	ID               int
	ShowTime         time.Time
	Movie            MovieSummary
	CinemaHall       CinemaHall
	TicketsAvailable int
	TakenSeats       []SeatRef
}

// MovieSessionFilters narrows the session candidate set. Nil fields leave the
// candidate set unchanged.
type MovieSessionFilters struct {
	Date    *time.Time
	MovieID *int
}

type MovieSessionRepository interface {
	GetAll(ctx context.Context, filters MovieSessionFilters) ([]MovieSessionSummary, error)
	GetById(ctx context.Context, id int) (*MovieSessionDetail, error)
	Create(ctx context.Context, session *MovieSession) error
	Update(ctx context.Context, session *MovieSession) error
	Delete(ctx context.Context, id int) error
}
