package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type MovieSessionRequest struct {
	ShowTime     time.Time `json:"show_time" validate:"required"`
	MovieID      int       `json:"movie" validate:"required,gt=0"`
	CinemaHallID int       `json:"cinema_hall" validate:"required,gt=0"`
}

// MovieSessionSummaryResponse is the list representation. TicketsAvailable is
// derived at query time and never persisted.
type MovieSessionSummaryResponse struct {
	ID                 int       `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	MovieTitle         string    `json:"movie_title"`
	CinemaHallName     string    `json:"cinema_hall_name"`
	CinemaHallCapacity int       `json:"cinema_hall_capacity"`
	TicketsAvailable   int       `json:"tickets_available"`
}

// MovieSessionDetailResponse is the retrieve representation with nested movie
// and hall records plus the already-taken seats.
type MovieSessionDetailResponse struct {
	ID               int                  `json:"id"`
	ShowTime         time.Time            `json:"show_time"`
	Movie            MovieSummaryResponse `json:"movie"`
	CinemaHall       CinemaHallResponse   `json:"cinema_hall"`
	TicketsAvailable int                  `json:"tickets_available"`
	TakenSeats       []SeatResponse       `json:"taken_seats"`
}

type MovieSessionResponse struct {
	ID           int       `json:"id"`
	ShowTime     time.Time `json:"show_time"`
	MovieID      int       `json:"movie"`
	CinemaHallID int       `json:"cinema_hall"`
}

type SeatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func (app *Application) ListMovieSessions(w http.ResponseWriter, r *http.Request) {
	filters, err := parseMovieSessionFilters(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sessions, err := app.movieSessionRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]MovieSessionSummaryResponse, len(sessions))
	for i, session := range sessions {
		resp[i] = toMovieSessionSummaryResponse(session)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	session, err := app.movieSessionRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieSessionDetailResponse(*session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovieSession(w http.ResponseWriter, r *http.Request) {
	var input MovieSessionRequest

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

	session := domain.MovieSession{
		ShowTime:     input.ShowTime,
		MovieID:      input.MovieID,
		CinemaHallID: input.CinemaHallID,
	}

	err = app.movieSessionRepo.Create(r.Context(), &session)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("the referenced movie or cinema hall does not exist"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovieSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input MovieSessionRequest

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

	session := domain.MovieSession{
		ID:           id,
		ShowTime:     input.ShowTime,
		MovieID:      input.MovieID,
		CinemaHallID: input.CinemaHallID,
	}

	err = app.movieSessionRepo.Update(r.Context(), &session)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovieSession(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.movieSessionRepo.Delete(r.Context(), id)
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

func toMovieSessionSummaryResponse(session domain.MovieSessionSummary) MovieSessionSummaryResponse {
	return MovieSessionSummaryResponse{
		ID:                 session.ID,
		ShowTime:           session.ShowTime,
		MovieTitle:         session.MovieTitle,
		CinemaHallName:     session.CinemaHallName,
		CinemaHallCapacity: session.CinemaHallCapacity,
		TicketsAvailable:   session.TicketsAvailable,
	}
}

func toMovieSessionDetailResponse(session domain.MovieSessionDetail) MovieSessionDetailResponse {
	takenSeats := make([]SeatResponse, len(session.TakenSeats))
	for i, seat := range session.TakenSeats {
		takenSeats[i] = SeatResponse{Row: seat.Row, Seat: seat.Seat}
	}

	return MovieSessionDetailResponse{
		ID:               session.ID,
		ShowTime:         session.ShowTime,
		Movie:            toMovieSummaryResponse(session.Movie),
		CinemaHall:       toCinemaHallResponse(session.CinemaHall),
		TicketsAvailable: session.TicketsAvailable,
		TakenSeats:       takenSeats,
	}
}

func toMovieSessionResponse(session domain.MovieSession) MovieSessionResponse {
	return MovieSessionResponse{
		ID:           session.ID,
		ShowTime:     session.ShowTime,
		MovieID:      session.MovieID,
		CinemaHallID: session.CinemaHallID,
	}
}
