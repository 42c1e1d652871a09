//go:build integration

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/AlineAreda/app-e2elab/internal/seed"
	"github.com/AlineAreda/app-e2elab/internal/testutil"
)

func TestIntegration_ExamCatalog(t *testing.T) {
	ctx := context.Background()
	pool, _ := testutil.OpenPool(ctx)
	if pool == nil {
		t.Skip("DATABASE_URL not set for integration tests")
		return
	}
	defer pool.Close()
	if err := testutil.MustMigrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_ = seed.Run(ctx, pool)

	h := newTestHandler(t, pool)
	srv := newTestRouter(h)
	_, token := signupTestUser(t, srv, randomCPF())

	// lista completa
	rec, out := doJSON(t, srv, http.MethodGet, "/api/exams", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exams: status %d", rec.Code)
	}
	all, _ := out["exams"].([]interface{})
	if len(all) == 0 {
		t.Fatal("catálogo vazio após o seed")
	}

	// consulta curta: lista completa volta com hint, sem filtrar
	rec, out = doJSON(t, srv, http.MethodGet, "/api/exams?q=he", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exams?q=he: status %d", rec.Code)
	}
	short, _ := out["exams"].([]interface{})
	if len(short) != len(all) {
		t.Errorf("consulta de 2 caracteres filtrou: %d exames, want %d", len(short), len(all))
	}
	if hint, _ := out["hint"].(string); hint == "" {
		t.Error("consulta curta deveria vir com hint")
	}

	// 3+ caracteres filtra por substring, caso-insensível
	rec, out = doJSON(t, srv, http.MethodGet, "/api/exams?q=hemog", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exams?q=hemog: status %d", rec.Code)
	}
	found, _ := out["exams"].([]interface{})
	if len(found) == 0 {
		t.Fatal("busca por 'hemog' não achou o hemograma do seed")
	}
	for _, e := range found {
		name, _ := e.(map[string]interface{})["name"].(string)
		if !strings.Contains(strings.ToLower(name), "hemog") {
			// descrição/categoria também contam; só reporta se nada casa
			desc, _ := e.(map[string]interface{})["description"].(string)
			cat, _ := e.(map[string]interface{})["category"].(string)
			if !strings.Contains(strings.ToLower(desc), "hemog") && !strings.Contains(strings.ToLower(cat), "hemog") {
				t.Errorf("resultado fora do filtro: %q", name)
			}
		}
	}

	// sem resultado: lista vazia, 200
	rec, out = doJSON(t, srv, http.MethodGet, "/api/exams?q=zzzzzz", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exams?q=zzzzzz: status %d", rec.Code)
	}
	if none, _ := out["exams"].([]interface{}); len(none) != 0 {
		t.Errorf("busca sem resultado devolveu %d exames, want 0", len(none))
	}

	// detalhe por id
	examID, _ := all[0].(map[string]interface{})["id"].(string)
	rec, out = doJSON(t, srv, http.MethodGet, "/api/exams/"+examID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exam by id: status %d", rec.Code)
	}
	if got, _ := out["id"].(string); got != examID {
		t.Errorf("detalhe devolveu id %q, want %q", got, examID)
	}

	// id desconhecido
	rec, _ = doJSON(t, srv, http.MethodGet, "/api/exams/00000000-0000-0000-0000-000000000000", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("exame desconhecido: status %d, want 404", rec.Code)
	}
}
