package api

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TranslateError converte erros de infraestrutura em mensagens em português
// seguras para o paciente. Nunca expõe detalhes internos do banco.
func TranslateError(err error) string {
	if err == nil {
		return "Ocorreu um erro desconhecido"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return "Este registro já existe no sistema."
		case "23503":
			return "Erro de referência. Dados relacionados não encontrados."
		case "23502":
			return "Campo obrigatório não preenchido."
		case "23514":
			return "Dados inválidos para este registro."
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return "Registro não encontrado."
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Tempo de espera esgotado. Tente novamente."
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"):
		return "Este registro já existe no sistema."
	case strings.Contains(msg, "foreign key"):
		return "Erro de referência. Dados relacionados não encontrados."
	case strings.Contains(msg, "null value in column"):
		return "Campo obrigatório não preenchido."
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "broken pipe"):
		return "Erro ao conectar com o servidor. Tente novamente."
	case strings.Contains(msg, "timeout"):
		return "Tempo de espera esgotado. Tente novamente."
	case strings.Contains(msg, "not found"):
		return "Registro não encontrado."
	}
	return "Ocorreu um erro. Por favor, tente novamente. Se o problema persistir, entre em contato com o suporte."
}
