package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/silverscreenhq/silverscreen-api/api"
	"github.com/silverscreenhq/silverscreen-api/internal/mocks"
	"github.com/silverscreenhq/silverscreen-api/internal/receipt"
	"github.com/silverscreenhq/silverscreen-api/internal/validator"

	appmailer "github.com/silverscreenhq/silverscreen-api/internal/mailer"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config: Config{
			SeatLockTTL:    10 * time.Minute,
			PendingTimeout: 30 * time.Minute,
			SweepInterval:  time.Minute,
			PayHere: PayHereConfig{
				MerchantID:     "1211149",
				MerchantSecret: "test-merchant-secret",
				Currency:       "LKR",
			},
		},
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:         appmailer.NewMockMailer(),
		receiptStore:   receipt.NewMockStore(),
		movieRepo:      &mocks.MockMovieRepo{},
		showtimeRepo:   &mocks.MockShowtimeRepo{},
		bookingRepo:    &mocks.MockBookingRepo{},
		seatLocker:     &mocks.MockSeatLocker{},
		paymentGateway: &mocks.MockPaymentGateway{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// executeRequest builds a JSON request and recorder. URL params are routed
// through a chi context so handlers can read them, and a non-empty userID
// lands in the request context the way ensureUserSession puts it there.
func executeRequest(t *testing.T, method, url string, body any, userID string, params map[string]string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}

	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = context.WithValue(ctx, userIDContextKey, userID)
	}

	w := httptest.NewRecorder()

	return w, r.WithContext(ctx)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if wantErrMessage != "" && !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}
