package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/mcinar/cinema-booking-api/internal/domain"
	"github.com/mcinar/cinema-booking-api/internal/mocks"
)

func newLoginUser(t *testing.T, email, password string) *domain.User {
	t.Helper()

	user := &domain.User{ID: 42, Email: email}

	err := user.Password.Set(password)
	if err != nil {
		t.Fatal(err)
	}

	return user
}

// withSession loads a fresh session into the request context so handlers can
// call the session manager outside the LoadAndSave middleware.
func withSession(t *testing.T, app *Application, r *http.Request) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	return r.WithContext(ctx)
}

func TestLogin(t *testing.T) {
	user := newLoginUser(t, "jane@example.com", "Str0ng!Pass")

	tests := []struct {
		name           string
		body           any
		getByEmailFunc func(context.Context, string) (*domain.User, error)
		wantStatus     int
		wantErrMessage string
		wantSessionUid int
	}{
		{
			name: "successful login stores the user id in the session",
			body: LoginRequest{Email: "jane@example.com", Password: "Str0ng!Pass"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return user, nil
			},
			wantStatus:     http.StatusNoContent,
			wantSessionUid: 42,
		},
		{
			name: "unknown email",
			body: LoginRequest{Email: "nobody@example.com", Password: "Str0ng!Pass"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			body: LoginRequest{Email: "jane@example.com", Password: "WrongPass1!"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return user, nil
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:           "missing password",
			body:           LoginRequest{Email: "jane@example.com"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{
					GetByEmailFunc: tt.getByEmailFunc,
				}
			})

			w, r := executeRequest(t, http.MethodPost, "/sessions", tt.body)
			r = withSession(t, app, r)

			app.Login(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("Login() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantSessionUid != 0 {
				got := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
				if got != tt.wantSessionUid {
					t.Errorf("session user id = %v, want %v", got, tt.wantSessionUid)
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestLogout(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodDelete, "/sessions", nil)
	r = withSession(t, app, r)

	app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), 42)

	app.Logout(w, r)

	if got := w.Code; got != http.StatusNoContent {
		t.Errorf("Logout() status = %v, want %v", got, http.StatusNoContent)
	}

	if got := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String()); got != 0 {
		t.Errorf("session user id after logout = %v, want 0", got)
	}
}

func TestRequireAuthentication(t *testing.T) {
	tests := []struct {
		name       string
		userId     int
		wantStatus int
	}{
		{
			name:       "authenticated request passes through",
			userId:     42,
			wantStatus: http.StatusOK,
		},
		{
			name:       "anonymous request is rejected",
			userId:     0,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := app.contextGetUserId(r); got != tt.userId {
					t.Errorf("context user id = %v, want %v", got, tt.userId)
				}

				w.WriteHeader(http.StatusOK)
			})

			w, r := executeRequest(t, http.MethodGet, "/orders", nil)
			r = withSession(t, app, r)

			if tt.userId != 0 {
				app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), tt.userId)
			}

			app.requireAuthentication(next).ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("requireAuthentication() status = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}
