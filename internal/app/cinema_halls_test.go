package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mcinar/cinema-booking-api/internal/domain"
	"github.com/mcinar/cinema-booking-api/internal/mocks"
)

func TestCreateCinemaHall(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		createFunc     func(context.Context, *domain.CinemaHall) error
		wantStatus     int
		wantErrMessage string
		wantResponse   *CinemaHallResponse
	}{
		{
			name: "capacity is derived from the layout",
			body: CinemaHallRequest{Name: "Hall A", Rows: 5, SeatsInRow: 10},
			createFunc: func(ctx context.Context, hall *domain.CinemaHall) error {
				hall.ID = 1
				return nil
			},
			wantStatus:   http.StatusCreated,
			wantResponse: &CinemaHallResponse{ID: 1, Name: "Hall A", Rows: 5, SeatsInRow: 10, Capacity: 50},
		},
		{
			name:           "zero rows",
			body:           CinemaHallRequest{Name: "Hall A", Rows: 0, SeatsInRow: 10},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "negative seats per row",
			body:           CinemaHallRequest{Name: "Hall A", Rows: 5, SeatsInRow: -1},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.cinemaHallRepo = &mocks.MockCinemaHallRepo{
					CreateFunc: tt.createFunc,
				}
			})

			w, r := executeRequest(t, http.MethodPost, "/cinema-halls", tt.body)

			app.CreateCinemaHall(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("CreateCinemaHall() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response CinemaHallResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(*tt.wantResponse, response); diff != "" {
					t.Errorf("CreateCinemaHall() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestGetCinemaHall(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		getByIdFunc    func(context.Context, int) (*domain.CinemaHall, error)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "successful retrieval",
			id:   "1",
			getByIdFunc: func(ctx context.Context, id int) (*domain.CinemaHall, error) {
				return &domain.CinemaHall{ID: 1, Name: "Hall A", Rows: 5, SeatsInRow: 10}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "hall not found",
			id:   "99",
			getByIdFunc: func(ctx context.Context, id int) (*domain.CinemaHall, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.cinemaHallRepo = &mocks.MockCinemaHallRepo{
					GetByIdFunc: tt.getByIdFunc,
				}
			})

			w, r := executeRequest(t, http.MethodGet, "/cinema-halls/"+tt.id, nil)
			r = withIDParam(r, tt.id)

			app.GetCinemaHall(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetCinemaHall() status = %v, want %v", got, tt.wantStatus)
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}
