package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/internal/auth"
)

type userKeyType string

const UserIDKey userKeyType = "user_id"

const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// Auth requires a valid Bearer token and puts its user id in the request
// context. It never touches the store.
func Auth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
				types.WriteMessage(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])
			if tokenStr == "" {
				types.WriteMessage(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			uid, err := tokens.Parse(tokenStr)
			if err != nil {
				types.WriteMessage(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}
			if e := entryFrom(r); e != nil {
				e.userID = uid
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UserIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
