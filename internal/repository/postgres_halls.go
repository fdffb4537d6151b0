package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type PostgresCinemaHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCinemaHallRepository(db *pgxpool.Pool) *PostgresCinemaHallRepository {
	return &PostgresCinemaHallRepository{
		db: db,
	}
}

func (p *PostgresCinemaHallRepository) GetAll(ctx context.Context) ([]domain.CinemaHall, error) {
	query := `
		SELECT id, name, seat_rows, seats_in_row
		FROM cinema_halls
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	halls := make([]domain.CinemaHall, 0)

	for rows.Next() {
		var hall domain.CinemaHall

		err := rows.Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsInRow)
		if err != nil {
			return nil, err
		}

		halls = append(halls, hall)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return halls, nil
}

func (p *PostgresCinemaHallRepository) GetById(ctx context.Context, id int) (*domain.CinemaHall, error) {
	query := `
		SELECT id, name, seat_rows, seats_in_row
		FROM cinema_halls
		WHERE id = $1
	`

	var hall domain.CinemaHall

	err := p.db.QueryRow(ctx, query, id).Scan(&hall.ID, &hall.Name, &hall.Rows, &hall.SeatsInRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &hall, nil
}

func (p *PostgresCinemaHallRepository) Create(ctx context.Context, hall *domain.CinemaHall) error {
	query := `
		INSERT INTO cinema_halls (name, seat_rows, seats_in_row)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return p.db.QueryRow(ctx, query, hall.Name, hall.Rows, hall.SeatsInRow).Scan(&hall.ID)
}

func (p *PostgresCinemaHallRepository) Update(ctx context.Context, hall *domain.CinemaHall) error {
	query := `
		UPDATE cinema_halls
		SET name = $1, seat_rows = $2, seats_in_row = $3
		WHERE id = $4
	`

	tag, err := p.db.Exec(ctx, query, hall.Name, hall.Rows, hall.SeatsInRow, hall.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresCinemaHallRepository) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM cinema_halls
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
