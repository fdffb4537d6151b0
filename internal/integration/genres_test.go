package integration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type GenreTestSuite struct {
	BaseSuite
}

func TestGenreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(GenreTestSuite))
}

func (s *GenreTestSuite) TestGenreCrud() {
	scenarios := []Scenario{
		{
			Name:           "creates a genre",
			Method:         "POST",
			URL:            "/genres",
			Body:           strings.NewReader(`{"name": "Drama"}`),
			ExpectedStatus: 201,
			ExpectedResponse: `{
				"id": 1,
				"name": "Drama"
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateAll(t, app.DB)
			},
		},
		{
			Name:           "lists genres",
			Method:         "GET",
			URL:            "/genres",
			ExpectedStatus: 200,
			ExpectedResponse: `[
				{"id": 1, "name": "Drama"}
			]`,
		},
		{
			Name:           "updates a genre",
			Method:         "PUT",
			URL:            "/genres/1",
			Body:           strings.NewReader(`{"name": "Thriller"}`),
			ExpectedStatus: 200,
			ExpectedResponse: `{
				"id": 1,
				"name": "Thriller"
			}`,
		},
		{
			Name:           "updating a missing genre yields 404",
			Method:         "PUT",
			URL:            "/genres/999",
			Body:           strings.NewReader(`{"name": "Thriller"}`),
			ExpectedStatus: 404,
		},
		{
			Name:           "deletes a genre",
			Method:         "DELETE",
			URL:            "/genres/1",
			ExpectedStatus: 204,
		},
		{
			Name:           "deleted genre is gone",
			Method:         "GET",
			URL:            "/genres/1",
			ExpectedStatus: 404,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *GenreTestSuite) TestCinemaHallCapacity() {
	scenarios := []Scenario{
		{
			Name:           "capacity is derived from rows and seats per row",
			Method:         "POST",
			URL:            "/cinema-halls",
			Body:           strings.NewReader(`{"name": "Hall 1", "rows": 5, "seats_in_row": 10}`),
			ExpectedStatus: 201,
			ExpectedResponse: `{
				"id": 1,
				"name": "Hall 1",
				"rows": 5,
				"seats_in_row": 10,
				"capacity": 50
			}`,
			BeforeTestFunc: func(t testing.TB, app *TestApp) {
				truncateAll(t, app.DB)
			},
		},
		{
			Name:           "rejects non-positive dimensions",
			Method:         "POST",
			URL:            "/cinema-halls",
			Body:           strings.NewReader(`{"name": "Hall 2", "rows": 0, "seats_in_row": 10}`),
			ExpectedStatus: 422,
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}
