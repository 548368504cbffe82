package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/silverscreenhq/silverscreen-api/api"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

// CreateBookingHandler converts a set of seat holds owned by the acting
// user into a pending booking and returns the checkout parameters for the
// payment provider. Every requested seat must be held by the user at the
// moment of the check; a single miss rejects the whole request before any
// seat changes state.
func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateBookingRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seats := make([]domain.Seat, 0, len(input.Seats))
	seen := make(map[domain.Seat]struct{}, len(input.Seats))

	for _, s := range input.Seats {
		seat := domain.Seat{Row: s.Row, Col: s.Col}
		if _, dup := seen[seat]; dup {
			app.badRequestResponse(w, r, fmt.Errorf("%w: %s", domain.ErrDuplicateSeats, seat))
			return
		}
		seen[seat] = struct{}{}
		seats = append(seats, seat)
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	for _, seat := range seats {
		if !seat.In(showtime.SeatRows, showtime.SeatCols) {
			app.badRequestResponse(w, r, fmt.Errorf("%w: %s", domain.ErrSeatOutOfBounds, seat))
			return
		}
	}

	userID := app.contextGetUserID(r)

	// All holds are verified before the first seat is committed, so a
	// rejected request leaves every hold exactly as it was.
	for _, seat := range seats {
		holder, err := app.seatLocker.Holder(r.Context(), showtimeID, seat)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
		if holder != userID {
			app.editConflictResponseWithErr(w, r, fmt.Errorf("%w: %s", domain.ErrSeatNotLockedByUser, seat))
			return
		}
	}

	booked, err := app.commitSeats(r.Context(), showtime, userID, seats)
	if err != nil {
		logger.Error("seat commit failed, rolling back", "showtime_id", showtimeID, "error", err)
		app.releaseSeats(r.Context(), showtimeID, booked)
		app.serverErrorResponse(w, r, err)
		return
	}

	amount := showtime.Price.Mul(decimal.NewFromInt(int64(len(seats))))

	// The booking id doubles as the gateway order id, so it is minted here
	// rather than by the database.
	booking := &domain.Booking{
		ID:          uuid.NewString(),
		ShowtimeID:  showtimeID,
		UserID:      userID,
		Seats:       seats,
		TotalAmount: amount,
		Currency:    app.config.PayHere.Currency,
		Status:      domain.BookingStatusPending,
		Email:       input.Email,
	}

	err = app.bookingRepo.Create(r.Context(), booking)
	if err != nil {
		logger.Error("booking insert failed, rolling back", "showtime_id", showtimeID, "error", err)
		app.releaseSeats(r.Context(), showtimeID, booked)
		app.serverErrorResponse(w, r, err)
		return
	}

	checkout, err := app.paymentGateway.Checkout(booking)
	if err != nil {
		// The seats stay booked and the record stays pending. The sweeper
		// reclaims it if the client never retries checkout.
		app.paymentProviderErrorResponse(w, r, err)
		return
	}

	logger.Info("booking created",
		"booking_id", booking.ID,
		"showtime_id", showtimeID,
		"seats", len(seats),
		"amount", amount.StringFixed(2))

	resp := api.CreateBookingResponse{
		Booking: toBookingResponse(booking),
		Checkout: api.CheckoutParams{
			MerchantId: checkout.MerchantID,
			OrderId:    checkout.OrderID,
			Amount:     checkout.Amount,
			Currency:   checkout.Currency,
			Hash:       checkout.Hash,
		},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetBookingHandler returns a booking to the user who created it.
func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID := app.readStringParam(r, "bookingID")

	booking, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if booking.UserID != app.contextGetUserID(r) {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// commitSeats moves each seat from held to booked, one coordinate at a
// time: release the hold, then add the seat to the booked set. It returns
// the seats that made it into the booked set so a failure partway through
// can be compensated.
func (app *Application) commitSeats(
	ctx context.Context,
	showtime *domain.Showtime,
	userID string,
	seats []domain.Seat) ([]domain.Seat, error) {

	booked := make([]domain.Seat, 0, len(seats))

	for _, seat := range seats {
		released, err := app.seatLocker.Unlock(ctx, showtime.ID, userID, seat)
		if err != nil {
			return booked, err
		}
		if !released {
			// The hold expired between validation and commit. Treat it like
			// any other mid-commit failure and let the caller compensate.
			return booked, fmt.Errorf("%w: %s", domain.ErrSeatNotLockedByUser, seat)
		}

		err = app.bookSeat(ctx, showtime.ID, seat)
		if err != nil {
			return booked, err
		}

		booked = append(booked, seat)
	}

	return booked, nil
}

// releaseSeats compensates a partial commit by returning seats to
// availability. Failures are logged and skipped so every seat gets an
// attempt.
func (app *Application) releaseSeats(ctx context.Context, showtimeID int, seats []domain.Seat) {
	for _, seat := range seats {
		err := app.unbookSeat(ctx, showtimeID, seat)
		if err != nil {
			app.logger.Error("seat rollback failed",
				"showtime_id", showtimeID,
				"seat", seat.String(),
				"error", err)
		}
	}
}

func toBookingResponse(b *domain.Booking) api.BookingResponse {
	seats := make([]api.Seat, len(b.Seats))
	for i, s := range b.Seats {
		seats[i] = api.Seat{Row: s.Row, Col: s.Col}
	}

	return api.BookingResponse{
		Id:          b.ID,
		ShowtimeId:  b.ShowtimeID,
		Seats:       seats,
		TotalAmount: b.TotalAmount,
		Currency:    b.Currency,
		Status:      string(b.Status),
		ReceiptUrl:  b.ReceiptURL,
		CreatedAt:   b.CreatedAt,
	}
}
