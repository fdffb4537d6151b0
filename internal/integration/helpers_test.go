package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func doRequest(app *TestApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec
}

// compareResponse ignores fields whose values are not deterministic across
// test runs.
func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "request_id" || k == "created_at" || k == "show_time"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), `
		TRUNCATE tickets, orders, movie_sessions, movie_actors, movie_genres,
			movies, cinema_halls, actors, genres, users
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func insertGenre(t testing.TB, db *pgxpool.Pool, name string) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO genres (name) VALUES ($1) RETURNING id", name).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertActor(t testing.TB, db *pgxpool.Pool, firstName, lastName string) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO actors (first_name, last_name) VALUES ($1, $2) RETURNING id",
		firstName, lastName).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertCinemaHall(t testing.TB, db *pgxpool.Pool, name string, rows, seatsInRow int) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO cinema_halls (name, seat_rows, seats_in_row) VALUES ($1, $2, $3) RETURNING id",
		name, rows, seatsInRow).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertMovie(t testing.TB, db *pgxpool.Pool, title string, genreIDs, actorIDs []int) int {
	ctx := context.Background()

	var id int
	err := db.QueryRow(ctx,
		"INSERT INTO movies (title, description, duration) VALUES ($1, $2, $3) RETURNING id",
		title, "A description of "+title+".", 120).Scan(&id)
	require.NoError(t, err)

	for _, genreId := range genreIDs {
		_, err = db.Exec(ctx, "INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2)", id, genreId)
		require.NoError(t, err)
	}

	for _, actorId := range actorIDs {
		_, err = db.Exec(ctx, "INSERT INTO movie_actors (movie_id, actor_id) VALUES ($1, $2)", id, actorId)
		require.NoError(t, err)
	}

	return id
}

func insertMovieSession(t testing.TB, db *pgxpool.Pool, showTime time.Time, movieId, hallId int) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO movie_sessions (show_time, movie_id, cinema_hall_id) VALUES ($1, $2, $3) RETURNING id",
		showTime, movieId, hallId).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertTicket(t testing.TB, db *pgxpool.Pool, orderId, sessionId, row, seat int) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO tickets (order_id, movie_session_id, seat_row, seat_number) VALUES ($1, $2, $3, $4) RETURNING id",
		orderId, sessionId, row, seat).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertUser(t testing.TB, db *pgxpool.Pool, email string) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO users (first_name, last_name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id",
		"Test", "User", email, []byte("not-a-real-hash")).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertOrder(t testing.TB, db *pgxpool.Pool, userId int) int {
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO orders (user_id) VALUES ($1) RETURNING id", userId).Scan(&id)
	require.NoError(t, err)

	return id
}

// registerAndLogin creates a user through the public endpoints and returns
// the session cookies needed to reach authenticated routes.
func registerAndLogin(t testing.TB, testApp *TestApp, email string) []*http.Cookie {
	routes := testApp.App.Routes()

	registerBody := fmt.Sprintf(`{
		"first_name": "Test",
		"last_name": "User",
		"email": "%s",
		"password": "Str0ng!Pass"
	}`, email)

	req := httptest.NewRequest("POST", "/users", strings.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	loginBody := fmt.Sprintf(`{"email": "%s", "password": "Str0ng!Pass"}`, email)

	req = httptest.NewRequest("POST", "/sessions", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	return cookies
}
