// Package payment implements the PayHere gateway boundary: building signed
// checkout parameters for a booking and verifying the integrity signature of
// the gateway's asynchronous notifications.
package payment

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/silverscreenhq/silverscreen-api/internal/domain"
)

// Notification status codes as defined by the gateway. Anything negative is
// a terminal failure.
const (
	StatusCaptured    = 2
	StatusPending     = 0
	StatusCanceled    = -1
	StatusFailed      = -2
	StatusChargedback = -3
)

type PayHereGateway struct {
	merchantID string
	secret     string
	currency   string
}

func NewPayHereGateway(merchantID, secret, currency string) *PayHereGateway {
	return &PayHereGateway{
		merchantID: merchantID,
		secret:     secret,
		currency:   currency,
	}
}

// Checkout builds the signed checkout parameters for a booking. The hash is
// MD5(merchantId + orderId + amount + currency + MD5(secret)), every digest
// uppercase hex and the amount formatted with exactly two decimals, as the
// gateway requires.
func (g *PayHereGateway) Checkout(booking *domain.Booking) (*domain.Checkout, error) {
	if g.merchantID == "" || g.secret == "" {
		return nil, errors.New("payhere: merchant credentials are not configured")
	}

	amount := booking.TotalAmount.StringFixed(2)
	hash := md5Upper(g.merchantID + booking.ID + amount + g.currency + md5Upper(g.secret))

	return &domain.Checkout{
		MerchantID: g.merchantID,
		OrderID:    booking.ID,
		Amount:     amount,
		Currency:   g.currency,
		Hash:       hash,
	}, nil
}

// VerifyNotification recomputes the callback signature over the notified
// fields and the shared secret. The comparison is constant-time; a mismatch
// marks the notification as forged or corrupted.
func (g *PayHereGateway) VerifyNotification(n domain.Notification) bool {
	local := md5Upper(
		n.MerchantID +
			n.OrderID +
			n.Amount +
			n.Currency +
			strconv.Itoa(n.StatusCode) +
			md5Upper(g.secret),
	)

	return hmac.Equal([]byte(local), []byte(strings.ToUpper(n.Signature)))
}

func md5Upper(v string) string {
	sum := md5.Sum([]byte(v))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
