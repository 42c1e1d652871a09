package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/AlineAreda/app-e2elab/internal/repo"
)

// searchMinChars é o mínimo de caracteres para a busca entrar em ação;
// abaixo disso a lista completa volta sem filtro.
const searchMinChars = 3

type examListResponse struct {
	Exams []repo.Exam `json:"exams"`
	Query string      `json:"query,omitempty"`
	Hint  string      `json:"hint,omitempty"`
}

// ListExams devolve os exames ativos, filtrados por ?q= quando a consulta
// tem 3+ caracteres. A lista sem filtro fica 30s em cache; consulta curta
// volta a lista completa com um hint.
func (h *Handler) ListExams(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	if len([]rune(q)) < searchMinChars {
		// O cache guarda só a resposta sem hint; consulta curta é rara e
		// segue direto ao banco.
		if q == "" {
			if cached := h.Cache.Get("exams:list"); cached != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Write(cached)
				return
			}
		}
		exams, err := repo.ListActiveExams(r.Context(), h.Pool)
		if err != nil {
			log.Printf("[exams] listagem falhou: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
			return
		}
		if exams == nil {
			exams = []repo.Exam{}
		}
		resp := examListResponse{Exams: exams}
		if q != "" {
			resp.Hint = "Digite pelo menos 3 caracteres para buscar."
		}
		body, err := json.Marshal(resp)
		if err != nil {
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
		if q == "" {
			h.Cache.Set("exams:list", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	exams, err := repo.SearchActiveExams(r.Context(), h.Pool, q)
	if err != nil {
		log.Printf("[exams] busca %q falhou: %v", q, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	if exams == nil {
		exams = []repo.Exam{}
	}
	writeJSON(w, http.StatusOK, examListResponse{Exams: exams, Query: q})
}

// GetExam devolve um exame pelo id, inclusive inativo (a tela de detalhe
// de um agendamento antigo ainda precisa dele).
func (h *Handler) GetExam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, `{"error":"id de exame inválido"}`, http.StatusBadRequest)
		return
	}
	exam, err := repo.ExamByID(r.Context(), h.Pool, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"Exame não encontrado."}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	writeJSON(w, http.StatusOK, exam)
}
