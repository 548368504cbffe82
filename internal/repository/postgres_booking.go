package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (id, showtime_id, user_id, total_amount, currency, status, customer_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.ID,
			booking.ShowtimeID,
			booking.UserID,
			booking.TotalAmount,
			booking.Currency,
			booking.Status,
			nullableString(booking.Email),
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)

		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Seats))
		for i, seat := range booking.Seats {
			rows = append(rows, []any{booking.ID, seat.Row, seat.Col, i})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "seat_row", "seat_col", "position"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, showtime_id, user_id, total_amount, currency, status,
			COALESCE(customer_email, ''), COALESCE(payment_ref, ''), COALESCE(receipt_url, ''),
			created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.UserID,
		&booking.TotalAmount,
		&booking.Currency,
		&booking.Status,
		&booking.Email,
		&booking.PaymentRef,
		&booking.ReceiptURL,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	booking.Seats, err = p.seatsByBookingId(ctx, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) seatsByBookingId(ctx context.Context, id string) ([]domain.Seat, error) {
	query := `
		SELECT seat_row, seat_col
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY position
	`

	rows, err := p.db.Query(ctx, query, id)
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

// Complete and Release guard on the pending status so that a booking can
// only ever leave pending once; retried gateway notifications and the stale
// sweep observe RowsAffected() == 0 and back off.

func (p *PostgresBookingRepository) Complete(ctx context.Context, id string, paymentRef string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', payment_ref = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := p.db.Exec(ctx, query, id, nullableString(paymentRef))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresBookingRepository) Release(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'released', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (p *PostgresBookingRepository) SetReceiptURL(ctx context.Context, id string, url string) error {
	query := `
		UPDATE bookings
		SET receipt_url = $2, updated_at = NOW()
		WHERE id = $1
	`

	_, err := p.db.Exec(ctx, query, id, url)
	return err
}

func (p *PostgresBookingRepository) ListStalePending(
	ctx context.Context,
	cutoff time.Time,
	limit int) ([]domain.Booking, error) {

	query := `
		SELECT id
		FROM bookings
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := p.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)

	for rows.Next() {
		var id string

		err = rows.Scan(&id)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(ids))

	for _, id := range ids {
		booking, err := p.GetById(ctx, id)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
