package middleware

import (
	"crypto/subtle"
	"net/http"
)

// RequireServiceKey protege as rotas administrativas com a chave de serviço
// (header X-Service-Key ou Authorization: Bearer). A chave nunca cai para a
// credencial pública: vazia = todas as requisições recusadas (fail-closed).
func RequireServiceKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				http.Error(w, `{"error":"service key não configurada"}`, http.StatusServiceUnavailable)
				return
			}
			got := r.Header.Get("X-Service-Key")
			if got == "" {
				got = extractBearer(r)
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
