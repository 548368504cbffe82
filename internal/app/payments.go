package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/silverscreenhq/silverscreen-api/internal/payment"
	"github.com/silverscreenhq/silverscreen-api/internal/receipt"
)

// PayHereNotifyHandler is the gateway's server-to-server callback. The
// response code is for the gateway, not a client: 200 acknowledges the
// notification even when it references an unknown booking or fails the
// signature check, so a forger learns nothing and the gateway stops
// retrying. Only a storage failure returns 500, which makes the gateway
// redeliver.
func (app *Application) PayHereNotifyHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	statusCode, err := strconv.Atoi(r.PostForm.Get("status_code"))
	if err != nil {
		logger.Warn("payment notification with malformed status code",
			"order_id", r.PostForm.Get("order_id"))
		w.WriteHeader(http.StatusOK)
		return
	}

	n := domain.Notification{
		MerchantID: r.PostForm.Get("merchant_id"),
		OrderID:    r.PostForm.Get("order_id"),
		PaymentID:  r.PostForm.Get("payment_id"),
		Amount:     r.PostForm.Get("payhere_amount"),
		Currency:   r.PostForm.Get("payhere_currency"),
		StatusCode: statusCode,
		Signature:  r.PostForm.Get("md5sig"),
	}

	booking, err := app.bookingRepo.GetById(r.Context(), n.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("payment notification for unknown booking", "order_id", n.OrderID)
			w.WriteHeader(http.StatusOK)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if !app.paymentGateway.VerifyNotification(n) {
		logger.Warn("payment notification failed signature check",
			"order_id", n.OrderID,
			"status_code", n.StatusCode)
		w.WriteHeader(http.StatusOK)
		return
	}

	switch {
	case n.StatusCode == payment.StatusCaptured:
		err = app.confirmBooking(r.Context(), logger.With("booking_id", booking.ID), booking, n.PaymentID)
	case n.StatusCode < 0:
		err = app.cancelBooking(r.Context(), booking)
	default:
		logger.Info("payment still pending at gateway",
			"booking_id", booking.ID,
			"status_code", n.StatusCode)
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// confirmBooking moves the booking to completed and issues the receipt.
// A booking that already left the pending state is acknowledged without
// side effects, so redelivered notifications change nothing.
func (app *Application) confirmBooking(
	ctx context.Context,
	logger *slog.Logger,
	booking *domain.Booking,
	paymentRef string) error {

	completed, err := app.bookingRepo.Complete(ctx, booking.ID, paymentRef)
	if err != nil {
		return err
	}
	if !completed {
		logger.Info("payment confirmation for non-pending booking", "status", booking.Status)
		return nil
	}

	logger.Info("booking completed", "payment_ref", paymentRef)

	booking.Status = domain.BookingStatusCompleted
	booking.PaymentRef = paymentRef

	app.background(app.logger, func() {
		err := app.issueReceipt(context.Background(), booking)
		if err != nil {
			app.logger.Error("receipt issue failed", "booking_id", booking.ID, "error", err)
		}
	})

	return nil
}

// cancelBooking releases a failed booking and returns its seats to
// availability. The status guard in Release keeps a redelivered failure
// notification from touching the seats twice.
func (app *Application) cancelBooking(ctx context.Context, booking *domain.Booking) error {
	released, err := app.bookingRepo.Release(ctx, booking.ID)
	if err != nil {
		return err
	}
	if !released {
		return nil
	}

	app.logger.Info("booking released after failed payment", "booking_id", booking.ID)
	app.releaseSeats(ctx, booking.ShowtimeID, booking.Seats)

	return nil
}

// issueReceipt renders the receipt artifact, persists it, records its URL
// on the booking and emails it to the customer when an address is known.
func (app *Application) issueReceipt(ctx context.Context, booking *domain.Booking) error {
	showtime, err := app.showtimeRepo.GetById(ctx, booking.ShowtimeID)
	if err != nil {
		return fmt.Errorf("loading showtime: %w", err)
	}

	movie, err := app.movieRepo.GetById(ctx, showtime.MovieID)
	if err != nil {
		return fmt.Errorf("loading movie: %w", err)
	}

	rendered, err := receipt.Render(receipt.Receipt{
		BookingID:  booking.ID,
		MovieTitle: movie.Title,
		Showtime:   showtime.StartsAt,
		Screen:     showtime.Screen,
		Seats:      booking.Seats,
		Amount:     booking.TotalAmount,
		Currency:   booking.Currency,
		PaymentRef: booking.PaymentRef,
		IssuedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("rendering receipt: %w", err)
	}

	url, err := app.receiptStore.Save(ctx, booking.ID+".html", rendered)
	if err != nil {
		return fmt.Errorf("storing receipt: %w", err)
	}

	err = app.bookingRepo.SetReceiptURL(ctx, booking.ID, url)
	if err != nil {
		return fmt.Errorf("recording receipt url: %w", err)
	}

	if booking.Email != "" {
		data := map[string]any{
			"bookingID":  booking.ID,
			"movieTitle": movie.Title,
			"showtime":   showtime.StartsAt,
			"seats":      len(booking.Seats),
			"amount":     booking.TotalAmount.StringFixed(2),
			"currency":   booking.Currency,
			"receiptURL": url,
		}

		err = app.mailer.Send(booking.Email, "booking_receipt.tmpl", data)
		if err != nil {
			app.logger.Error("receipt email failed", "booking_id", booking.ID, "error", err)
		}
	}

	return nil
}
