package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/silverscreenhq/silverscreen-api/internal/mailer"
	"github.com/silverscreenhq/silverscreen-api/internal/payment"
	"github.com/silverscreenhq/silverscreen-api/internal/receipt"
	"github.com/silverscreenhq/silverscreen-api/internal/repository"
	appvalidator "github.com/silverscreenhq/silverscreen-api/internal/validator"
	"github.com/silverscreenhq/silverscreen-api/internal/vcs"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	wg             sync.WaitGroup

	movieRepo    domain.MovieRepository
	showtimeRepo domain.ShowtimeRepository
	bookingRepo  domain.BookingRepository
	seatLocker   domain.SeatLocker

	paymentGateway domain.PaymentGateway
	receiptStore   receipt.Store
}

type Config struct {
	Port int
	Env  string

	DB    DBConfig
	Redis RedisConfig
	SMTP  SMTPConfig

	PayHere  PayHereConfig
	Receipts ReceiptsConfig

	SeatLockTTL    time.Duration
	PendingTimeout time.Duration
	SweepInterval  time.Duration

	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type PayHereConfig struct {
	MerchantID     string
	MerchantSecret string
	Currency       string
}

type ReceiptsConfig struct {
	Dir     string
	BaseURL string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "SilverScreen <no-reply@silverscreen.example>", "SMTP sender")

	flag.StringVar(&cfg.PayHere.MerchantID, "payhere-merchant-id", "", "PayHere merchant ID")
	flag.StringVar(&cfg.PayHere.MerchantSecret, "payhere-merchant-secret", "", "PayHere merchant secret")
	flag.StringVar(&cfg.PayHere.Currency, "payhere-currency", "LKR", "Payment currency")

	flag.StringVar(&cfg.Receipts.Dir, "receipts-dir", "./receipts", "Directory for generated receipts")
	flag.StringVar(&cfg.Receipts.BaseURL, "receipts-base-url", "http://localhost:3000/receipts", "Base URL receipts are served from")

	flag.DurationVar(&cfg.SeatLockTTL, "seat-lock-ttl", 10*time.Minute, "Seat hold duration")
	flag.DurationVar(&cfg.PendingTimeout, "booking-pending-timeout", 30*time.Minute, "Age after which a pending booking is released")
	flag.DurationVar(&cfg.SweepInterval, "booking-sweep-interval", 5*time.Minute, "Interval between stale booking sweeps")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := NewApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

// NewApplication wires the application from its configuration. The caller
// owns the returned Application and must Close it.
func NewApplication(cfg Config, logger *slog.Logger) (*Application, error) {
	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresShowtimeRepository(db),
		repository.NewPostgresBookingRepository(db),
		repository.NewRedisSeatLocker(redisClient),
		payment.NewPayHereGateway(cfg.PayHere.MerchantID, cfg.PayHere.MerchantSecret, cfg.PayHere.Currency),
		receipt.NewDiskStore(cfg.Receipts.Dir, cfg.Receipts.BaseURL),
	)

	return app, nil
}

// NewApp assembles an Application from already-constructed dependencies.
// Integration tests use it to swap the outward-facing pieces while keeping
// real storage underneath.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	movieRepo domain.MovieRepository,
	showtimeRepo domain.ShowtimeRepository,
	bookingRepo domain.BookingRepository,
	seatLocker domain.SeatLocker,
	paymentGateway domain.PaymentGateway,
	receiptStore receipt.Store) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		movieRepo:      movieRepo,
		showtimeRepo:   showtimeRepo,
		bookingRepo:    bookingRepo,
		seatLocker:     seatLocker,
		paymentGateway: paymentGateway,
		receiptStore:   receiptStore,
	}
}

func (app *Application) Close() {
	app.redis.Close()
	app.db.Close()
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()

	app.StartStaleBookingSweeper(sweepCtx)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		cancelSweep()
		app.wg.Wait()

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
