package domain

import "context"

type Movie struct {
	ID          int
	Title       string
	Description string
	Duration    int
	Genres      []Genre
	Actors      []Actor
}

// MovieSummary is the list representation of a movie. Genre and actor
// associations are flattened to names.
type MovieSummary struct {
	ID          int
	Title       string
	Description string
	Duration    int
	GenreNames  []string
	ActorNames  []string
}

// MovieFilters narrows the movie candidate set. Filters combine with AND
// across dimensions; within an ID list any match qualifies. A zero value
// leaves the candidate set unchanged.
type MovieFilters struct {
	GenreIDs []int
	ActorIDs []int
	Title    string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]MovieSummary, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie, genreIDs, actorIDs []int) error
	Update(ctx context.Context, movie *Movie, genreIDs, actorIDs []int) error
	Delete(ctx context.Context, id int) error
}
