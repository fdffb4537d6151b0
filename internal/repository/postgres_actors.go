package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type PostgresActorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresActorRepository(db *pgxpool.Pool) *PostgresActorRepository {
	return &PostgresActorRepository{
		db: db,
	}
}

func (p *PostgresActorRepository) GetAll(ctx context.Context) ([]domain.Actor, error) {
	query := `
		SELECT id, first_name, last_name
		FROM actors
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actors := make([]domain.Actor, 0)

	for rows.Next() {
		var actor domain.Actor

		err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName)
		if err != nil {
			return nil, err
		}

		actors = append(actors, actor)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return actors, nil
}

func (p *PostgresActorRepository) GetById(ctx context.Context, id int) (*domain.Actor, error) {
	query := `
		SELECT id, first_name, last_name
		FROM actors
		WHERE id = $1
	`

	var actor domain.Actor

	err := p.db.QueryRow(ctx, query, id).Scan(&actor.ID, &actor.FirstName, &actor.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &actor, nil
}

func (p *PostgresActorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	query := `
		INSERT INTO actors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`

	return p.db.QueryRow(ctx, query, actor.FirstName, actor.LastName).Scan(&actor.ID)
}

func (p *PostgresActorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	query := `
		UPDATE actors
		SET first_name = $1, last_name = $2
		WHERE id = $3
	`

	tag, err := p.db.Exec(ctx, query, actor.FirstName, actor.LastName, actor.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresActorRepository) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM actors
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
