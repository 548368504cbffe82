package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgerrcode"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, starts_at, ends_at, screen, price, seat_rows, seat_cols)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		showtime.MovieID,
		showtime.StartsAt,
		showtime.EndsAt,
		showtime.Screen,
		showtime.Price,
		showtime.SeatRows,
		showtime.SeatCols,
	).Scan(&showtime.ID, &showtime.CreatedAt, &showtime.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return domain.ErrMovieNotFound
	}

	return err
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, starts_at, ends_at, screen, price, seat_rows, seat_cols, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.StartsAt,
		&showtime.EndsAt,
		&showtime.Screen,
		&showtime.Price,
		&showtime.SeatRows,
		&showtime.SeatCols,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &showtime, nil
}

// BookSeat relies on the primary key over (showtime_id, seat_row, seat_col):
// concurrent inserts of the same coordinate collapse into a single row, so
// the booked set can never hold duplicates.
func (p *PostgresShowtimeRepository) BookSeat(ctx context.Context, showtimeID int, seat domain.Seat) error {
	query := `
		INSERT INTO showtime_booked_seats (showtime_id, seat_row, seat_col)
		VALUES ($1, $2, $3)
		ON CONFLICT (showtime_id, seat_row, seat_col) DO NOTHING
	`

	_, err := p.db.Exec(ctx, query, showtimeID, seat.Row, seat.Col)
	return err
}

func (p *PostgresShowtimeRepository) UnbookSeat(ctx context.Context, showtimeID int, seat domain.Seat) (bool, error) {
	query := `
		DELETE FROM showtime_booked_seats
		WHERE showtime_id = $1 AND seat_row = $2 AND seat_col = $3
	`

	tag, err := p.db.Exec(ctx, query, showtimeID, seat.Row, seat.Col)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresShowtimeRepository) BookedSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	query := `
		SELECT seat_row, seat_col
		FROM showtime_booked_seats
		WHERE showtime_id = $1
		ORDER BY seat_row, seat_col
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.Row, &seat.Col)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func (p *PostgresShowtimeRepository) IsBooked(ctx context.Context, showtimeID int, seat domain.Seat) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM showtime_booked_seats
			WHERE showtime_id = $1 AND seat_row = $2 AND seat_col = $3
		)
	`

	var booked bool

	err := p.db.QueryRow(ctx, query, showtimeID, seat.Row, seat.Col).Scan(&booked)
	if err != nil {
		return false, err
	}

	return booked, nil
}
