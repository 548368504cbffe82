package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silverscreenhq/silverscreen-api/internal/app"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/silverscreenhq/silverscreen-api/internal/mailer"
	"github.com/silverscreenhq/silverscreen-api/internal/payment"
	"github.com/silverscreenhq/silverscreen-api/internal/receipt"
	"github.com/silverscreenhq/silverscreen-api/internal/repository"
	appvalidator "github.com/silverscreenhq/silverscreen-api/internal/validator"
)

type TestApp struct {
	App          *app.Application
	DB           *pgxpool.Pool
	SeatLocker   domain.SeatLocker
	Mailer       *mailer.MockMailer
	ReceiptStore *receipt.MockStore
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()
	receiptStore := receipt.NewMockStore()

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

	movieRepo := repository.NewPostgresMovieRepository(db)
	showtimeRepo := repository.NewPostgresShowtimeRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)
	seatLocker := repository.NewRedisSeatLocker(redisClient)

	// The real gateway runs against the test merchant credentials so the
	// notify flow exercises genuine signature verification.
	paymentGateway := payment.NewPayHereGateway(cfg.PayHere.MerchantID, cfg.PayHere.MerchantSecret, cfg.PayHere.Currency)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		movieRepo,
		showtimeRepo,
		bookingRepo,
		seatLocker,
		paymentGateway,
		receiptStore,
	)

	return &TestApp{
		App:          application,
		DB:           db,
		SeatLocker:   seatLocker,
		Mailer:       mockMailer,
		ReceiptStore: receiptStore,
	}, nil
}
