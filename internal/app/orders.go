package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mcinar/cinema-booking-api/internal/domain"
)

type OrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

// TicketRequest carries no user field: the owner of an order is always taken
// from the authenticated session, never from the request body.
type TicketRequest struct {
	MovieSessionID int `json:"movie_session" validate:"required,gt=0"`
	Row            int `json:"row" validate:"required,gt=0"`
	Seat           int `json:"seat" validate:"required,gt=0"`
}

type OrderListResponse struct {
	Orders   []OrderResponse  `json:"orders"`
	Metadata MetadataResponse `json:"metadata"`
}

type OrderResponse struct {
	ID        int              `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

type TicketResponse struct {
	ID           int                   `json:"id"`
	Row          int                   `json:"row"`
	Seat         int                   `json:"seat"`
	MovieSession TicketSessionResponse `json:"movie_session"`
}

type TicketSessionResponse struct {
	ID             int       `json:"id"`
	ShowTime       time.Time `json:"show_time"`
	MovieTitle     string    `json:"movie_title"`
	CinemaHallName string    `json:"cinema_hall_name"`
}

type MetadataResponse struct {
	CurrentPage  int `json:"current_page"`
	FirstPage    int `json:"first_page"`
	LastPage     int `json:"last_page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
}

func (app *Application) ListOrders(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)
	pagination := parseOrderPagination(r.URL.Query())

	orders, metadata, err := app.orderRepo.GetAllByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	orderResponses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		orderResponses[i] = toOrderResponse(order)
	}

	resp := OrderListResponse{
		Orders:   orderResponses,
		Metadata: toMetadataResponse(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOrder(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	// Scoping by user ID makes foreign orders indistinguishable from
	// missing ones.
	order, err := app.orderRepo.GetByIdAndUserId(r.Context(), id, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toOrderResponse(*order), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	var input OrderRequest

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

	order := domain.Order{UserID: userId}
	for _, ticket := range input.Tickets {
		order.Tickets = append(order.Tickets, domain.Ticket{
			MovieSessionID: ticket.MovieSessionID,
			Row:            ticket.Row,
			Seat:           ticket.Seat,
		})
	}

	err = app.orderRepo.Create(r.Context(), &order)
	if err != nil {
		var seatRangeErr *domain.SeatRangeError

		switch {
		case errors.Is(err, domain.ErrMovieSessionNotFound):
			app.badRequestResponse(w, r, err)
		case errors.As(err, &seatRangeErr):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrSeatAlreadyTaken):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.sendOrderConfirmation(r, order)

	created, err := app.orderRepo.GetByIdAndUserId(r.Context(), order.ID, userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toOrderResponse(*created), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendOrderConfirmation(r *http.Request, order domain.Order) {
	go func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("panic occurred during sending order confirmation mail", "panic", err)
			}
		}()

		user, err := app.userRepo.GetById(ctx, order.UserID)
		if err != nil {
			app.logger.Error("failed to load user for order confirmation", "error", err)
			return
		}

		data := map[string]any{
			"orderID":     order.ID,
			"ticketCount": len(order.Tickets),
		}

		err = app.mailer.Send(user.Email, "order_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send order confirmation email", "error", err)
		}
	}(context.WithoutCancel(r.Context()))
}

func toOrderResponse(order domain.OrderSummary) OrderResponse {
	tickets := make([]TicketResponse, len(order.Tickets))

	for i, ticket := range order.Tickets {
		tickets[i] = TicketResponse{
			ID:   ticket.ID,
			Row:  ticket.Row,
			Seat: ticket.Seat,
			MovieSession: TicketSessionResponse{
				ID:             ticket.MovieSession.ID,
				ShowTime:       ticket.MovieSession.ShowTime,
				MovieTitle:     ticket.MovieSession.MovieTitle,
				CinemaHallName: ticket.MovieSession.CinemaHallName,
			},
		}
	}

	return OrderResponse{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Tickets:   tickets,
	}
}

func toMetadataResponse(metadata *domain.Metadata) MetadataResponse {
	if metadata == nil {
		return MetadataResponse{}
	}

	return MetadataResponse{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
