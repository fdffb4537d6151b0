package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type PostgresGenreRepository struct {
	db *pgxpool.Pool
}

func NewPostgresGenreRepository(db *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{
		db: db,
	}
}

func (p *PostgresGenreRepository) GetAll(ctx context.Context) ([]domain.Genre, error) {
	query := `
		SELECT id, name
		FROM genres
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)

	for rows.Next() {
		var genre domain.Genre

		err := rows.Scan(&genre.ID, &genre.Name)
		if err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return genres, nil
}

func (p *PostgresGenreRepository) GetById(ctx context.Context, id int) (*domain.Genre, error) {
	query := `
		SELECT id, name
		FROM genres
		WHERE id = $1
	`

	var genre domain.Genre

	err := p.db.QueryRow(ctx, query, id).Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &genre, nil
}

func (p *PostgresGenreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	query := `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id
	`

	err := p.db.QueryRow(ctx, query, genre.Name).Scan(&genre.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateGenre
		}

		return err
	}

	return nil
}

func (p *PostgresGenreRepository) Update(ctx context.Context, genre *domain.Genre) error {
	query := `
		UPDATE genres
		SET name = $1
		WHERE id = $2
	`

	tag, err := p.db.Exec(ctx, query, genre.Name, genre.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateGenre
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresGenreRepository) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM genres
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
