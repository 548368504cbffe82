package integration_test

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"expiresAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return strings.NewReader(string(data))
}

func sessionCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}

	return nil
}

func createTestMovie(t testing.TB, app *TestApp, title string) int {
	var id int

	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO movies (title, poster_url) VALUES ($1, $2) RETURNING id`,
		title,
		"https://example.com/poster.jpg",
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func createTestShowtime(t testing.TB, app *TestApp, movieID, rows, cols int, price string) int {
	var id int

	starts := time.Now().Add(48 * time.Hour)

	err := app.DB.QueryRow(
		context.Background(),
		`INSERT INTO showtimes (movie_id, starts_at, ends_at, screen, price, seat_rows, seat_cols)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		movieID,
		starts,
		starts.Add(150*time.Minute),
		"Screen 1",
		price,
		rows,
		cols,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func bookingStatus(t testing.TB, app *TestApp, bookingID string) string {
	var status string

	err := app.DB.QueryRow(
		context.Background(),
		`SELECT status FROM bookings WHERE id = $1`,
		bookingID,
	).Scan(&status)
	require.NoError(t, err)

	return status
}

func bookedSeatCount(t testing.TB, app *TestApp, showtimeID int) int {
	var count int

	err := app.DB.QueryRow(
		context.Background(),
		`SELECT COUNT(*) FROM showtime_booked_seats WHERE showtime_id = $1`,
		showtimeID,
	).Scan(&count)
	require.NoError(t, err)

	return count
}

func md5Upper(s string) string {
	return strings.ToUpper(fmt.Sprintf("%x", md5.Sum([]byte(s))))
}

// payhereNotifySignature reproduces the digest the gateway attaches to its
// server-to-server notifications.
func payhereNotifySignature(orderID, amount, currency string, statusCode int) string {
	return md5Upper(
		testMerchantID + orderID + amount + currency +
			fmt.Sprintf("%d", statusCode) + md5Upper(testSecret),
	)
}
