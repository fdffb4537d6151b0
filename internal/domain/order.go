package domain

import (
	"context"
	"time"
)

type Order struct {
	ID        int
	UserID    int
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID             int
	OrderID        int
	MovieSessionID int
	Row            int
	Seat           int
}

// OrderSummary is the list representation of an order, with each ticket
// carrying a compact view of its movie session.
type OrderSummary struct {
	ID        int
	CreatedAt time.Time
	Tickets   []TicketSummary
}

type TicketSummary struct {
	ID           int
	Row          int
	Seat         int
	MovieSession TicketSessionInfo
}

type TicketSessionInfo struct {
	ID             int
	ShowTime       time.Time
	MovieTitle     string
	CinemaHallName string
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetAllByUserId(ctx context.Context, userId int, pagination Pagination) ([]OrderSummary, *Metadata, error)
	GetByIdAndUserId(ctx context.Context, orderId, userId int) (*OrderSummary, error)
}
