package app

import "net/http"

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(userIDContextKey).(string)
	if !ok || userID == "" {
		panic("missing user id from context")
	}

	return userID
}
