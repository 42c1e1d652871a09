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

// DeleteUserByEmail remove a conta, o perfil e os agendamentos de um
// usuário. O e-mail vem da query string; o body {"email": ...} serve de
// fallback quando a query está vazia. Falha ao remover perfil ou
// agendamentos é registrada e não aborta; falha ao remover a conta é fatal.
func (h *Handler) DeleteUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		var body struct {
			Email string `json:"email"`
		}
		// Body ilegível não interrompe: a validação abaixo responde 400.
		_ = json.NewDecoder(r.Body).Decode(&body)
		email = body.Email
	}

	if strings.TrimSpace(email) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "E-mail é obrigatório e deve ser uma string"})
		return
	}
	if !ValidEmail(email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Formato de e-mail inválido"})
		return
	}
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := repo.UserByEmail(r.Context(), h.Pool, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Usuário não encontrado com este e-mail"})
			return
		}
		log.Printf("[admin] busca de usuário %s falhou: %v", email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Erro ao buscar usuário",
			"details": TranslateError(err),
		})
		return
	}

	if err := repo.DeleteProfile(r.Context(), h.Pool, user.ID); err != nil {
		log.Printf("[admin] remoção de perfil %s falhou (seguindo): %v", user.ID, err)
	}
	if _, err := repo.DeleteAppointmentsByUser(r.Context(), h.Pool, user.ID); err != nil {
		log.Printf("[admin] remoção de agendamentos de %s falhou (seguindo): %v", user.ID, err)
	}

	if err := repo.DeleteUser(r.Context(), h.Pool, user.ID); err != nil {
		log.Printf("[admin] remoção de usuário %s falhou: %v", user.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Erro ao deletar usuário",
			"details": TranslateError(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Usuário deletado com sucesso",
		"deletedUserId": user.ID.String(),
		"deletedEmail":  email,
	})
}

// UpdateExam atualiza parcialmente um exame do catálogo. PUT e PATCH têm a
// mesma semântica. Campos ausentes não são tocados; cada campo presente é
// validado por tipo com mensagem específica.
func (h *Handler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	examID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ID do exame é obrigatório"})
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Body da requisição inválido. Deve ser um JSON válido"})
		return
	}
	if len(raw) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pelo menos um campo deve ser fornecido para atualização"})
		return
	}

	var u repo.ExamUpdate
	if msg, bad := parseExamUpdate(raw, &u); bad {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	if _, err := repo.ExamByID(r.Context(), h.Pool, examID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Exame não encontrado"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Erro ao atualizar exame",
			"details": TranslateError(err),
		})
		return
	}

	updated, err := repo.UpdateExam(r.Context(), h.Pool, examID, &u)
	if err != nil {
		log.Printf("[admin] atualização de exame %s falhou: %v", examID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Erro ao atualizar exame",
			"details": TranslateError(err),
		})
		return
	}
	// Catálogo mudou: derruba as respostas em cache.
	h.Cache.DeletePrefix("exams:")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Exame atualizado com sucesso",
		"exam":    updated,
	})
}

// parseExamUpdate valida campo a campo com a mensagem própria de cada um.
func parseExamUpdate(raw map[string]json.RawMessage, u *repo.ExamUpdate) (string, bool) {
	if msg, ok := raw["name"]; ok {
		var s string
		if json.Unmarshal(msg, &s) != nil || strings.TrimSpace(s) == "" {
			return "Nome do exame deve ser uma string não vazia", true
		}
		u.Name = &s
	}
	if msg, ok := raw["description"]; ok {
		var s string
		if json.Unmarshal(msg, &s) != nil {
			return "Descrição deve ser uma string", true
		}
		u.Description = &s
	}
	if msg, ok := raw["duration"]; ok {
		var n float64
		if json.Unmarshal(msg, &n) != nil || n <= 0 {
			return "Duração deve ser um número positivo", true
		}
		d := int(n)
		u.Duration = &d
	}
	if msg, ok := raw["price"]; ok {
		var n float64
		if json.Unmarshal(msg, &n) != nil || n < 0 {
			return "Preço deve ser um número maior ou igual a zero", true
		}
		u.Price = &n
	}
	if msg, ok := raw["category"]; ok {
		var s string
		if json.Unmarshal(msg, &s) != nil || strings.TrimSpace(s) == "" {
			return "Categoria deve ser uma string não vazia", true
		}
		u.Category = &s
	}
	if msg, ok := raw["preparation"]; ok {
		var s string
		if json.Unmarshal(msg, &s) != nil {
			return "Preparo deve ser uma string", true
		}
		u.Preparation = &s
	}
	if msg, ok := raw["fasting_required"]; ok {
		var b bool
		if json.Unmarshal(msg, &b) != nil {
			return "fasting_required deve ser um booleano", true
		}
		u.FastingRequired = &b
	}
	if msg, ok := raw["fasting_hours"]; ok {
		var n float64
		if json.Unmarshal(msg, &n) != nil || n < 0 {
			return "Horas de jejum deve ser um número maior ou igual a zero", true
		}
		fh := int(n)
		u.FastingHours = &fh
	}
	if msg, ok := raw["active"]; ok {
		var b bool
		if json.Unmarshal(msg, &b) != nil {
			return "active deve ser um booleano", true
		}
		u.Active = &b
	}
	return "", false
}
