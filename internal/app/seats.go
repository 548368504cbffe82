package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/silverscreenhq/silverscreen-api/api"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

// LockSeatHandler grants the acting user a time-bounded exclusive hold on a
// single seat. The hold fails if the seat is booked or held by anyone,
// including the same user; conflicts come back as 409 so the client can
// refresh its seat map and retry with a different seat.
func (app *Application) LockSeatHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.LockSeatRequest

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

	seat := domain.Seat{Row: input.Row, Col: input.Col}
	userID := app.contextGetUserID(r)

	locked, err := app.lockSeat(r.Context(), showtime, userID, seat)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatOutOfBounds):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			logger.Warn("lock attempt on booked seat", "showtime_id", showtimeID, "seat", seat.String())
			app.editConflictResponseWithErr(w, r, fmt.Errorf("%w: %s", domain.ErrSeatAlreadyBooked, seat))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !locked {
		logger.Warn("lock conflict", "showtime_id", showtimeID, "seat", seat.String())
		app.editConflictResponseWithErr(w, r, fmt.Errorf("%w: %s", domain.ErrSeatAlreadyLocked, seat))
		return
	}

	resp := api.LockSeatResponse{
		Locked:    true,
		ExpiresAt: time.Now().Add(app.config.SeatLockTTL),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UnlockSeatHandler releases a hold the acting user owns. Releasing a seat
// the user does not hold, including one whose hold already expired, is a
// conflict rather than an error.
func (app *Application) UnlockSeatHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.LockSeatRequest

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

	seat := domain.Seat{Row: input.Row, Col: input.Col}
	userID := app.contextGetUserID(r)

	released, err := app.seatLocker.Unlock(r.Context(), showtimeID, userID, seat)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !released {
		app.editConflictResponseWithErr(w, r, fmt.Errorf("no hold on seat %s belongs to you", seat))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lockSeat checks layout bounds and the booked set before acquiring the
// hold. The acquisition itself is atomic in the lock store, so two
// concurrent requests for the same coordinate cannot both succeed.
func (app *Application) lockSeat(
	ctx context.Context,
	showtime *domain.Showtime,
	userID string,
	seat domain.Seat) (bool, error) {

	if !seat.In(showtime.SeatRows, showtime.SeatCols) {
		return false, domain.ErrSeatOutOfBounds
	}

	booked, err := app.showtimeRepo.IsBooked(ctx, showtime.ID, seat)
	if err != nil {
		return false, err
	}
	if booked {
		return false, domain.ErrSeatAlreadyBooked
	}

	return app.seatLocker.Lock(ctx, showtime.ID, userID, seat, app.config.SeatLockTTL)
}

// bookSeat commits a seat to the booked set. A coordinate that is still
// locked is left untouched: callers must release the hold first, and a
// racing locker keeps its claim.
func (app *Application) bookSeat(ctx context.Context, showtimeID int, seat domain.Seat) error {
	holder, err := app.seatLocker.Holder(ctx, showtimeID, seat)
	if err != nil {
		return err
	}
	if holder != "" {
		return nil
	}

	return app.showtimeRepo.BookSeat(ctx, showtimeID, seat)
}

// unbookSeat returns a booked seat to availability. Unbooking a seat that
// is not booked is a no-op.
func (app *Application) unbookSeat(ctx context.Context, showtimeID int, seat domain.Seat) error {
	_, err := app.showtimeRepo.UnbookSeat(ctx, showtimeID, seat)
	return err
}
