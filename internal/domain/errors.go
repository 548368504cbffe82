package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrSeatOutOfBounds     = errors.New("seat coordinate is outside the showtime's layout")
	ErrSeatAlreadyLocked   = errors.New("seat is already locked")
	ErrSeatAlreadyBooked   = errors.New("seat is already booked")
	ErrSeatNotLockedByUser = errors.New("seat is not locked by the requesting user")
	ErrDuplicateSeats      = errors.New("duplicate seat in selection")
)
