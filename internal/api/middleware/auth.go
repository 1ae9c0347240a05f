package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth exige el header X-User-ID con el usuario autenticado.
// El gateway institucional valida las credenciales; aquí solo se
// propaga la identidad al contexto del request.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, "falta el header X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "header X-User-ID inválido")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID recupera el usuario autenticado del contexto
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
