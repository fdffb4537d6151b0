package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// GetAll narrows the movie set by the supplied filters. Filter dimensions
// combine with AND; an empty ID list or title leaves its dimension
// unconstrained.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]domain.MovieSummary, error) {
	query := `
		SELECT m.id, m.title, m.description, m.duration,
			COALESCE((
				SELECT array_agg(g.name ORDER BY g.name)
				FROM genres g
				JOIN movie_genres mg ON mg.genre_id = g.id
				WHERE mg.movie_id = m.id), '{}'),
			COALESCE((
				SELECT array_agg(a.first_name || ' ' || a.last_name ORDER BY a.last_name, a.first_name)
				FROM actors a
				JOIN movie_actors ma ON ma.actor_id = a.id
				WHERE ma.movie_id = m.id), '{}')
		FROM movies m
		WHERE ($1 = '' OR m.title ILIKE '%' || $1 || '%')
			AND (COALESCE(cardinality($2::int[]), 0) = 0 OR EXISTS (
				SELECT 1 FROM movie_genres mg
				WHERE mg.movie_id = m.id AND mg.genre_id = ANY($2)))
			AND (COALESCE(cardinality($3::int[]), 0) = 0 OR EXISTS (
				SELECT 1 FROM movie_actors ma
				WHERE ma.movie_id = m.id AND ma.actor_id = ANY($3)))
		ORDER BY m.id
	`

	rows, err := p.db.Query(ctx, query, escapeLikePattern(filters.Title), filters.GenreIDs, filters.ActorIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.MovieSummary, 0)

	for rows.Next() {
		var movie domain.MovieSummary

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Duration,
			&movie.GenreNames,
			&movie.ActorNames,
		)

		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE wildcards so a title filter matches the
// client's input literally.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, duration
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	movie.Genres, err = p.retrieveGenres(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Actors, err = p.retrieveActors(ctx, id)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) retrieveGenres(ctx context.Context, movieId int) ([]domain.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id = $1
		ORDER BY g.id
	`

	rows, err := p.db.Query(ctx, query, movieId)
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

func (p *PostgresMovieRepository) retrieveActors(ctx context.Context, movieId int) ([]domain.Actor, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name
		FROM actors a
		JOIN movie_actors ma ON ma.actor_id = a.id
		WHERE ma.movie_id = $1
		ORDER BY a.id
	`

	rows, err := p.db.Query(ctx, query, movieId)
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

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie, genreIDs, actorIDs []int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (title, description, duration)
			VALUES ($1, $2, $3)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, movie.Title, movie.Description, movie.Duration).Scan(&movie.ID)
		if err != nil {
			return err
		}

		return p.replaceAssociations(ctx, tx, movie.ID, genreIDs, actorIDs)
	})
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie, genreIDs, actorIDs []int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE movies
			SET title = $1, description = $2, duration = $3
			WHERE id = $4
		`

		tag, err := tx.Exec(ctx, query, movie.Title, movie.Description, movie.Duration, movie.ID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movie.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM movie_actors WHERE movie_id = $1`, movie.ID)
		if err != nil {
			return err
		}

		return p.replaceAssociations(ctx, tx, movie.ID, genreIDs, actorIDs)
	})
}

func (p *PostgresMovieRepository) replaceAssociations(ctx context.Context, tx pgx.Tx, movieId int, genreIDs, actorIDs []int) error {
	if len(genreIDs) > 0 {
		query := `
			INSERT INTO movie_genres (movie_id, genre_id)
			SELECT $1, unnest($2::int[])
		`

		_, err := tx.Exec(ctx, query, movieId, genreIDs)
		if err != nil {
			return mapForeignKeyViolation(err)
		}
	}

	if len(actorIDs) > 0 {
		query := `
			INSERT INTO movie_actors (movie_id, actor_id)
			SELECT $1, unnest($2::int[])
		`

		_, err := tx.Exec(ctx, query, movieId, actorIDs)
		if err != nil {
			return mapForeignKeyViolation(err)
		}
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM movies
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
