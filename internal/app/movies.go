package app

import (
	"errors"
	"net/http"

	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type MovieRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	GenreIDs    []int  `json:"genres" validate:"dive,gt=0"`
	ActorIDs    []int  `json:"actors" validate:"dive,gt=0"`
}

// MovieSummaryResponse is the list representation: genre and actor
// associations are flattened to names.
type MovieSummaryResponse struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

// MovieDetailResponse is the retrieve representation with full nested
// genre and actor records.
type MovieDetailResponse struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := parseMovieFilters(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movies, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]MovieSummaryResponse, len(movies))
	for i, movie := range movies {
		resp[i] = toMovieSummaryResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieDetailResponse(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input MovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := domain.Movie{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
	}

	err = app.movieRepo.Create(r.Context(), &movie, input.GenreIDs, input.ActorIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("one of the referenced genres or actors does not exist"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.respondWithMovie(w, r, movie.ID, http.StatusCreated)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input MovieRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := domain.Movie{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
	}

	err = app.movieRepo.Update(r.Context(), &movie, input.GenreIDs, input.ActorIDs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.respondWithMovie(w, r, movie.ID, http.StatusOK)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// respondWithMovie reloads the movie so the response carries the stored
// genre and actor associations.
func (app *Application) respondWithMovie(w http.ResponseWriter, r *http.Request, id, status int) error {
	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		return err
	}

	return app.writeJSON(w, status, toMovieDetailResponse(*movie), nil)
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toMovieSummaryResponse(movie domain.MovieSummary) MovieSummaryResponse {
	return MovieSummaryResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      movie.GenreNames,
		Actors:      movie.ActorNames,
	}
}

func toMovieDetailResponse(movie domain.Movie) MovieDetailResponse {
	genres := make([]GenreResponse, len(movie.Genres))
	for i, genre := range movie.Genres {
		genres[i] = toGenreResponse(genre)
	}

	actors := make([]ActorResponse, len(movie.Actors))
	for i, actor := range movie.Actors {
		actors[i] = toActorResponse(actor)
	}

	return MovieDetailResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      genres,
		Actors:      actors,
	}
}
