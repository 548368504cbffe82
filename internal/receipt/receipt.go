// Package receipt renders booking receipts and persists them through a
// storage boundary that hands back a retrieval URL. Only the URL is kept on
// the booking; the storage backend itself is replaceable.
package receipt

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

//go:embed templates
var templateFS embed.FS

// Store persists a rendered receipt and returns its retrieval URL.
type Store interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}

type Receipt struct {
	BookingID  string
	MovieTitle string
	Showtime   time.Time
	Screen     string
	Seats      []domain.Seat
	Amount     decimal.Decimal
	Currency   string
	PaymentRef string
	IssuedAt   time.Time
}

func Render(r Receipt) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/receipt.tmpl")
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, r)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
