package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type PostgresMovieSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieSessionRepository(db *pgxpool.Pool) *PostgresMovieSessionRepository {
	return &PostgresMovieSessionRepository{
		db: db,
	}
}

// GetAll returns movie session summaries matching the filters. The remaining
// seat count is derived in the same query, so the whole candidate set is
// annotated in a single pass instead of one ticket count per session.
func (p *PostgresMovieSessionRepository) GetAll(ctx context.Context, filters domain.MovieSessionFilters) ([]domain.MovieSessionSummary, error) {
	query := `
		SELECT ms.id, ms.show_time, m.title, h.name,
			h.seat_rows * h.seats_in_row,
			h.seat_rows * h.seats_in_row - COUNT(t.id)
		FROM movie_sessions ms
		JOIN movies m ON ms.movie_id = m.id
		JOIN cinema_halls h ON ms.cinema_hall_id = h.id
		LEFT JOIN tickets t ON t.movie_session_id = ms.id
		WHERE ($1::date IS NULL OR ms.show_time::date = $1::date)
			AND ($2::int IS NULL OR ms.movie_id = $2)
		GROUP BY ms.id, ms.show_time, m.title, h.name, h.seat_rows, h.seats_in_row
		ORDER BY ms.show_time, ms.id
	`

	rows, err := p.db.Query(ctx, query, filters.Date, filters.MovieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.MovieSessionSummary, 0)

	for rows.Next() {
		var session domain.MovieSessionSummary

		err := rows.Scan(
			&session.ID,
			&session.ShowTime,
			&session.MovieTitle,
			&session.CinemaHallName,
			&session.CinemaHallCapacity,
			&session.TicketsAvailable,
		)

		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (p *PostgresMovieSessionRepository) GetById(ctx context.Context, id int) (*domain.MovieSessionDetail, error) {
	query := `
		SELECT ms.id, ms.show_time,
			m.id, m.title, m.description, m.duration,
			COALESCE((
				SELECT array_agg(g.name ORDER BY g.name)
				FROM genres g
				JOIN movie_genres mg ON mg.genre_id = g.id
				WHERE mg.movie_id = m.id), '{}'),
			COALESCE((
				SELECT array_agg(a.first_name || ' ' || a.last_name ORDER BY a.last_name, a.first_name)
				FROM actors a
				JOIN movie_actors ma ON ma.actor_id = a.id
				WHERE ma.movie_id = m.id), '{}'),
			h.id, h.name, h.seat_rows, h.seats_in_row
		FROM movie_sessions ms
		JOIN movies m ON ms.movie_id = m.id
		JOIN cinema_halls h ON ms.cinema_hall_id = h.id
		WHERE ms.id = $1
	`

	var detail domain.MovieSessionDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.ShowTime,
		&detail.Movie.ID,
		&detail.Movie.Title,
		&detail.Movie.Description,
		&detail.Movie.Duration,
		&detail.Movie.GenreNames,
		&detail.Movie.ActorNames,
		&detail.CinemaHall.ID,
		&detail.CinemaHall.Name,
		&detail.CinemaHall.Rows,
		&detail.CinemaHall.SeatsInRow,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	detail.TakenSeats, err = p.retrieveTakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.TicketsAvailable = detail.CinemaHall.Capacity() - len(detail.TakenSeats)

	return &detail, nil
}

func (p *PostgresMovieSessionRepository) retrieveTakenSeats(ctx context.Context, sessionId int) ([]domain.SeatRef, error) {
	query := `
		SELECT seat_row, seat_number
		FROM tickets
		WHERE movie_session_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, sessionId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatRef, 0)

	for rows.Next() {
		var seat domain.SeatRef

		err := rows.Scan(&seat.Row, &seat.Seat)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresMovieSessionRepository) Create(ctx context.Context, session *domain.MovieSession) error {
	query := `
		INSERT INTO movie_sessions (show_time, movie_id, cinema_hall_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, session.ShowTime, session.MovieID, session.CinemaHallID).Scan(&session.ID)
	if err != nil {
		return mapForeignKeyViolation(err)
	}

	return nil
}

func (p *PostgresMovieSessionRepository) Update(ctx context.Context, session *domain.MovieSession) error {
	query := `
		UPDATE movie_sessions
		SET show_time = $1, movie_id = $2, cinema_hall_id = $3
		WHERE id = $4
	`

	tag, err := p.db.Exec(ctx, query, session.ShowTime, session.MovieID, session.CinemaHallID, session.ID)
	if err != nil {
		return mapForeignKeyViolation(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieSessionRepository) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM movie_sessions
		WHERE id = $1
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
