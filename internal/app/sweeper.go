package app

import (
	"context"
	"time"
)

const staleSweepBatchSize = 100

// StartStaleBookingSweeper runs the reconciliation sweep on a fixed
// interval until ctx is canceled. The sweep releases pending bookings
// whose payment never arrived and returns their seats to availability,
// covering clients that abandoned checkout and gateways whose callbacks
// were lost.
func (app *Application) StartStaleBookingSweeper(ctx context.Context) {
	app.background(app.logger, func() {
		ticker := time.NewTicker(app.config.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.sweepStaleBookings(ctx)
			}
		}
	})
}

func (app *Application) sweepStaleBookings(ctx context.Context) {
	cutoff := time.Now().Add(-app.config.PendingTimeout)

	stale, err := app.bookingRepo.ListStalePending(ctx, cutoff, staleSweepBatchSize)
	if err != nil {
		app.logger.Error("stale booking sweep failed", "error", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	app.logger.Info("sweeping stale bookings", "count", len(stale), "cutoff", cutoff)

	for _, booking := range stale {
		released, err := app.bookingRepo.Release(ctx, booking.ID)
		if err != nil {
			app.logger.Error("releasing stale booking failed", "booking_id", booking.ID, "error", err)
			continue
		}

		// A payment notification can land between the list and the release.
		// The status guard makes Release lose that race cleanly.
		if !released {
			continue
		}

		app.releaseSeats(ctx, booking.ShowtimeID, booking.Seats)
		app.logger.Info("stale booking released",
			"booking_id", booking.ID,
			"showtime_id", booking.ShowtimeID,
			"seats", len(booking.Seats))
	}
}
