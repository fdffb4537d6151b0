package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcinar/cinema-booking-api/internal/app"
	"github.com/mcinar/cinema-booking-api/internal/mailer"
	"github.com/mcinar/cinema-booking-api/internal/repository"
	appvalidator "github.com/mcinar/cinema-booking-api/internal/validator"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		repository.NewPostgresGenreRepository(db),
		repository.NewPostgresActorRepository(db),
		repository.NewPostgresCinemaHallRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresMovieSessionRepository(db),
		repository.NewPostgresOrderRepository(db),
		repository.NewPostgresUserRepository(db),
	)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
