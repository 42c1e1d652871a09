package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serviceKeyProbe(key, header, bearer string) int {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodDelete, "/api/users/delete", nil)
	if header != "" {
		req.Header.Set("X-Service-Key", header)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	RequireServiceKey(key)(next).ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireServiceKey(t *testing.T) {
	if got := serviceKeyProbe("segredo", "segredo", ""); got != http.StatusOK {
		t.Errorf("chave correta no header: status %d", got)
	}
	if got := serviceKeyProbe("segredo", "", "segredo"); got != http.StatusOK {
		t.Errorf("chave correta via bearer: status %d", got)
	}
	if got := serviceKeyProbe("segredo", "errada", ""); got != http.StatusUnauthorized {
		t.Errorf("chave errada: status %d", got)
	}
	if got := serviceKeyProbe("segredo", "", ""); got != http.StatusUnauthorized {
		t.Errorf("sem chave: status %d", got)
	}
}

// Sem chave configurada a rota fica indisponível, nunca aberta.
func TestRequireServiceKeyUnconfigured(t *testing.T) {
	if got := serviceKeyProbe("", "qualquer", ""); got != http.StatusServiceUnavailable {
		t.Errorf("sem chave configurada: status %d, want 503", got)
	}
	if got := serviceKeyProbe("", "", ""); got != http.StatusServiceUnavailable {
		t.Errorf("sem chave configurada e sem header: status %d, want 503", got)
	}
}
