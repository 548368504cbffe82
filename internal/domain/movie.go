package domain

import (
	"context"
	"time"
)

// Movie is the slice of the catalog the booking core needs: enough to
// validate a showtime's movie reference and to label receipts. Catalog
// management itself lives elsewhere.
type Movie struct {
	ID        int
	Title     string
	PosterURL string
	CreatedAt time.Time
}

type MovieRepository interface {
	GetById(ctx context.Context, id int) (*Movie, error)
}
