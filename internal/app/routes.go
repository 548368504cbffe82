package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.attachRequestLogger)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Route("/showtimes", func(r chi.Router) {
		r.Post("/", app.CreateShowtimeHandler)

		r.Route("/{showtimeID}", func(r chi.Router) {
			r.Get("/", app.GetShowtimeHandler)
			r.Get("/seats", app.GetSeatMapHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.ensureUserSession)

				r.Post("/seats/lock", app.LockSeatHandler)
				r.Post("/seats/unlock", app.UnlockSeatHandler)
				r.Post("/bookings", app.CreateBookingHandler)
			})
		})
	})

	r.With(app.ensureUserSession).Get("/bookings/{bookingID}", app.GetBookingHandler)

	// Server-to-server gateway callback, outside any user session.
	r.Post("/payments/payhere/notify", app.PayHereNotifyHandler)

	return r
}
