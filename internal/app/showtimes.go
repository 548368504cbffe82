package app

import (
	"errors"
	"net/http"

	"github.com/silverscreenhq/silverscreen-api/api"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

func (app *Application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateShowtimeRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if input.Price.IsNegative() {
		app.badRequestResponse(w, r, errors.New("price must not be negative"))
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("showtime creation for unknown movie", "movie_id", input.MovieId)
			app.badRequestResponse(w, r, domain.ErrMovieNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtime := &domain.Showtime{
		MovieID:  movie.ID,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		Screen:   input.Screen,
		Price:    input.Price,
		SeatRows: input.SeatRows,
		SeatCols: input.SeatCols,
	}

	err = app.showtimeRepo.Create(r.Context(), showtime)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("showtime created", "showtime_id", showtime.ID, "movie_id", movie.ID)

	resp := toShowtimeResponse(showtime, movie.Title)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
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

	var movieTitle string
	if movie, err := app.movieRepo.GetById(r.Context(), showtime.MovieID); err == nil {
		movieTitle = movie.Title
	}

	resp := toShowtimeResponse(showtime, movieTitle)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetSeatMapHandler overlays the persisted booked set and the currently held
// locks onto the showtime's layout so clients can render availability.
func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := app.readIDParam(r, "showtimeID")
	if err != nil {
		app.badRequestResponse(w, r, err)
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

	bookedSeats, err := app.showtimeRepo.BookedSeats(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	lockedSeats, err := app.seatLocker.LockedSeats(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	statuses := make(map[domain.Seat]api.SeatStatus, len(bookedSeats)+len(lockedSeats))
	for _, seat := range lockedSeats {
		statuses[seat] = api.SeatStatusLocked
	}
	for _, seat := range bookedSeats {
		statuses[seat] = api.SeatStatusBooked
	}

	entries := make([]api.SeatMapEntry, 0, showtime.TotalSeats())

	for row := 0; row < showtime.SeatRows; row++ {
		for col := 0; col < showtime.SeatCols; col++ {
			status, ok := statuses[domain.Seat{Row: row, Col: col}]
			if !ok {
				status = api.SeatStatusAvailable
			}

			entries = append(entries, api.SeatMapEntry{Row: row, Col: col, Status: status})
		}
	}

	resp := api.SeatMapResponse{
		ShowtimeId: showtimeID,
		SeatRows:   showtime.SeatRows,
		SeatCols:   showtime.SeatCols,
		Seats:      entries,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowtimeResponse(showtime *domain.Showtime, movieTitle string) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:         showtime.ID,
		MovieId:    showtime.MovieID,
		MovieTitle: movieTitle,
		StartsAt:   showtime.StartsAt,
		EndsAt:     showtime.EndsAt,
		Screen:     showtime.Screen,
		Price:      showtime.Price,
		SeatRows:   showtime.SeatRows,
		SeatCols:   showtime.SeatCols,
		TotalSeats: showtime.TotalSeats(),
	}
}
