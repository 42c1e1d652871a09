package api

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "Ocorreu um erro desconhecido"},
		{"unique violation", &pgconn.PgError{Code: "23505"}, "Este registro já existe no sistema."},
		{"fk violation", &pgconn.PgError{Code: "23503"}, "Erro de referência. Dados relacionados não encontrados."},
		{"not null", &pgconn.PgError{Code: "23502"}, "Campo obrigatório não preenchido."},
		{"no rows", pgx.ErrNoRows, "Registro não encontrado."},
		{"deadline", context.DeadlineExceeded, "Tempo de espera esgotado. Tente novamente."},
		{"duplicate by message", errors.New(`duplicate key value violates unique constraint "users_email_key"`), "Este registro já existe no sistema."},
		{"conn refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "Erro ao conectar com o servidor. Tente novamente."},
		{"unknown", errors.New("algo muito estranho"), "Ocorreu um erro. Por favor, tente novamente. Se o problema persistir, entre em contato com o suporte."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TranslateError(c.err); got != c.want {
				t.Errorf("TranslateError(%v) = %q, want %q", c.err, got, c.want)
			}
		})
	}
}

func TestTranslateErrorWrappedPgError(t *testing.T) {
	wrapped := errors.Join(errors.New("inserting user"), &pgconn.PgError{Code: "23505"})
	if got := TranslateError(wrapped); got != "Este registro já existe no sistema." {
		t.Errorf("erro embrulhado não foi traduzido: %q", got)
	}
}
