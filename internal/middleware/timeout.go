package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout limita a duração de cada request via context. Estourado o prazo,
// o context é cancelado e as queries pgx em andamento abortam; a resposta
// fica a cargo do handler (normalmente um 500 traduzido pelo TranslateError).
// Com timeoutSec <= 0 o middleware vira passagem direta.
func Timeout(timeoutSec int) func(http.Handler) http.Handler {
	if timeoutSec <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	d := time.Duration(timeoutSec) * time.Second
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
