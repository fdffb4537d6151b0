package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type PostgresOrderRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOrderRepository(db *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// Create persists the order and its tickets atomically. Seat coordinates are
// checked against the hall bounds of each referenced session; the
// (session, row, seat) uniqueness is left to the database constraint.
func (p *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := p.checkSeatBounds(ctx, tx, order.Tickets)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO orders (user_id)
			VALUES ($1)
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, query, order.UserID).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(order.Tickets))
		for _, ticket := range order.Tickets {
			rows = append(rows, []any{
				order.ID,
				ticket.MovieSessionID,
				ticket.Row,
				ticket.Seat,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"tickets"},
			[]string{"order_id", "movie_session_id", "seat_row", "seat_number"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrSeatAlreadyTaken
			}

			return err
		}

		return p.reloadTickets(ctx, tx, order)
	})
}

func (p *PostgresOrderRepository) checkSeatBounds(ctx context.Context, tx pgx.Tx, tickets []domain.Ticket) error {
	sessionIds := make([]int, 0, len(tickets))
	seen := make(map[int]bool)

	for _, ticket := range tickets {
		if !seen[ticket.MovieSessionID] {
			seen[ticket.MovieSessionID] = true
			sessionIds = append(sessionIds, ticket.MovieSessionID)
		}
	}

	query := `
		SELECT ms.id, h.seat_rows, h.seats_in_row
		FROM movie_sessions ms
		JOIN cinema_halls h ON ms.cinema_hall_id = h.id
		WHERE ms.id = ANY($1)
	`

	rows, err := tx.Query(ctx, query, sessionIds)
	if err != nil {
		return err
	}
	defer rows.Close()

	halls := make(map[int]domain.CinemaHall)

	for rows.Next() {
		var sessionId int
		var hall domain.CinemaHall

		err := rows.Scan(&sessionId, &hall.Rows, &hall.SeatsInRow)
		if err != nil {
			return err
		}

		halls[sessionId] = hall
	}

	if err = rows.Err(); err != nil {
		return err
	}

	for _, ticket := range tickets {
		hall, ok := halls[ticket.MovieSessionID]
		if !ok {
			return domain.ErrMovieSessionNotFound
		}

		if ticket.Row < 1 || ticket.Row > hall.Rows {
			return &domain.SeatRangeError{Field: "row", Value: ticket.Row, Max: hall.Rows}
		}

		if ticket.Seat < 1 || ticket.Seat > hall.SeatsInRow {
			return &domain.SeatRangeError{Field: "seat", Value: ticket.Seat, Max: hall.SeatsInRow}
		}
	}

	return nil
}

func (p *PostgresOrderRepository) reloadTickets(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	query := `
		SELECT id, order_id, movie_session_id, seat_row, seat_number
		FROM tickets
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := tx.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0, len(order.Tickets))

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(&ticket.ID, &ticket.OrderID, &ticket.MovieSessionID, &ticket.Row, &ticket.Seat)
		if err != nil {
			return err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return err
	}

	order.Tickets = tickets

	return nil
}

// GetAllByUserId lists the orders belonging to userId, newest first. Orders of
// other users are unreachable through this query by construction.
func (p *PostgresOrderRepository) GetAllByUserId(ctx context.Context, userId int, pagination domain.Pagination) ([]domain.OrderSummary, *domain.Metadata, error) {
	query := `
		SELECT COUNT(*) OVER(), id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userId, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]domain.OrderSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var order domain.OrderSummary

		err := rows.Scan(&totalRecords, &order.ID, &order.CreatedAt)
		if err != nil {
			return nil, nil, err
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	err = p.attachTickets(ctx, orders)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return orders, metadata, nil
}

func (p *PostgresOrderRepository) GetByIdAndUserId(ctx context.Context, orderId, userId int) (*domain.OrderSummary, error) {
	query := `
		SELECT id, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	var order domain.OrderSummary

	err := p.db.QueryRow(ctx, query, orderId, userId).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	orders := []domain.OrderSummary{order}

	err = p.attachTickets(ctx, orders)
	if err != nil {
		return nil, err
	}

	return &orders[0], nil
}

// attachTickets loads the tickets of all given orders in one query and
// distributes them to their owners.
func (p *PostgresOrderRepository) attachTickets(ctx context.Context, orders []domain.OrderSummary) error {
	if len(orders) == 0 {
		return nil
	}

	orderIds := make([]int, 0, len(orders))
	byId := make(map[int]*domain.OrderSummary, len(orders))

	for i := range orders {
		orders[i].Tickets = make([]domain.TicketSummary, 0)
		orderIds = append(orderIds, orders[i].ID)
		byId[orders[i].ID] = &orders[i]
	}

	query := `
		SELECT t.order_id, t.id, t.seat_row, t.seat_number,
			ms.id, ms.show_time, m.title, h.name
		FROM tickets t
		JOIN movie_sessions ms ON t.movie_session_id = ms.id
		JOIN movies m ON ms.movie_id = m.id
		JOIN cinema_halls h ON ms.cinema_hall_id = h.id
		WHERE t.order_id = ANY($1)
		ORDER BY t.order_id, t.id
	`

	rows, err := p.db.Query(ctx, query, orderIds)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderId int
		var ticket domain.TicketSummary

		err := rows.Scan(
			&orderId,
			&ticket.ID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.MovieSession.ID,
			&ticket.MovieSession.ShowTime,
			&ticket.MovieSession.MovieTitle,
			&ticket.MovieSession.CinemaHallName,
		)

		if err != nil {
			return err
		}

		order := byId[orderId]
		order.Tickets = append(order.Tickets, ticket)
	}

	return rows.Err()
}
