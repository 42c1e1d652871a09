package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/AlineAreda/app-e2elab/internal/auth"
	"github.com/AlineAreda/app-e2elab/internal/pdf"
	"github.com/AlineAreda/app-e2elab/internal/repo"
	"github.com/AlineAreda/app-e2elab/internal/schedule"
)

type CreateAppointmentRequest struct {
	ExamID        string `json:"exam_id"`
	UnitID        string `json:"unit_id"`
	ScheduledDate string `json:"scheduled_date"` // AAAA-MM-DD
	ScheduledTime string `json:"scheduled_time"` // HH:MM
}

type RescheduleRequest struct {
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

func (h *Handler) currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(auth.UserIDFrom(r.Context()))
	if err != nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

// CreateAppointment agenda um exame. Todos os campos são obrigatórios; a
// data precisa estar na janela de agendamento e fora de domingo. Não há
// controle de lotação por horário.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"corpo da requisição inválido"}`, http.StatusBadRequest)
		return
	}
	if req.ExamID == "" || req.UnitID == "" || req.ScheduledDate == "" || req.ScheduledTime == "" {
		http.Error(w, `{"error":"Selecione exame, unidade, data e horário para agendar."}`, http.StatusBadRequest)
		return
	}
	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		http.Error(w, `{"error":"id de exame inválido"}`, http.StatusBadRequest)
		return
	}
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		http.Error(w, `{"error":"id de unidade inválido"}`, http.StatusBadRequest)
		return
	}
	date, slot, errMsg := parseDateAndSlot(req.ScheduledDate, req.ScheduledTime)
	if errMsg != "" {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, errMsg), http.StatusBadRequest)
		return
	}

	// ExamByID/UnitByID devolvem também inativos (a tela de detalhe usa);
	// agendar exige os dois ativos.
	exam, err := repo.ExamByID(r.Context(), h.Pool, examID)
	if err != nil {
		http.Error(w, `{"error":"Exame não encontrado."}`, http.StatusNotFound)
		return
	}
	if !exam.Active {
		http.Error(w, `{"error":"Este exame não está mais disponível para agendamento."}`, http.StatusBadRequest)
		return
	}
	unit, err := repo.UnitByID(r.Context(), h.Pool, unitID)
	if err != nil {
		http.Error(w, `{"error":"Unidade não encontrada."}`, http.StatusNotFound)
		return
	}
	if !unit.Active {
		http.Error(w, `{"error":"Esta unidade não está disponível para agendamento."}`, http.StatusBadRequest)
		return
	}

	appt, err := repo.CreateAppointment(r.Context(), h.Pool, userID, examID, unitID, date, slot)
	if err != nil {
		log.Printf("[appointments] criação falhou para usuário %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// parseDateAndSlot valida data e horário contra a política de funcionamento.
func parseDateAndSlot(dateStr, slot string) (time.Time, string, string) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", "data inválida, use o formato AAAA-MM-DD"
	}
	if date.Weekday() == time.Sunday {
		return time.Time{}, "", "unidade fechada aos domingos"
	}
	if !schedule.IsBookable(date, time.Now()) {
		return time.Time{}, "", "data fora da janela de agendamento"
	}
	if !schedule.ValidSlot(date, slot) {
		return time.Time{}, "", "horário fora do funcionamento da unidade"
	}
	return date, slot, ""
}

// ListMyAppointments lista os agendamentos do usuário com exame e unidade.
func (h *Handler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	list, err := repo.AppointmentsByUser(r.Context(), h.Pool, userID)
	if err != nil {
		log.Printf("[appointments] listagem falhou para usuário %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	if list == nil {
		list = []repo.AppointmentDetail{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"appointments": list})
}

// CancelAppointment marca como cancelado, sempre escopado por id + usuário.
func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, `{"error":"id de agendamento inválido"}`, http.StatusBadRequest)
		return
	}

	if err := repo.CancelAppointment(r.Context(), h.Pool, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			appt, lookErr := repo.AppointmentByIDAndUser(r.Context(), h.Pool, id, userID)
			if lookErr == nil {
				// Já cancelado continua cancelado: efeito idempotente.
				if appt.Status == repo.StatusCancelled {
					writeJSON(w, http.StatusOK, appt)
					return
				}
				// Realizado não se cancela.
				http.Error(w, `{"error":"Apenas agendamentos com status \"agendado\" podem ser cancelados"}`, http.StatusConflict)
				return
			}
			http.Error(w, `{"error":"Agendamento não encontrado."}`, http.StatusNotFound)
			return
		}
		log.Printf("[appointments] cancelamento %s falhou: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	appt, err := repo.AppointmentByIDAndUser(r.Context(), h.Pool, id, userID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": repo.StatusCancelled})
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// RescheduleAppointment muda data/horário mantendo o status. Só vale para
// agendamentos ainda marcados; repetir a mesma data e horário é recusado.
func (h *Handler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, `{"error":"id de agendamento inválido"}`, http.StatusBadRequest)
		return
	}
	var req RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"corpo da requisição inválido"}`, http.StatusBadRequest)
		return
	}

	appt, err := repo.AppointmentByIDAndUser(r.Context(), h.Pool, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"Agendamento não encontrado."}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	if appt.Status != repo.StatusScheduled {
		http.Error(w, `{"error":"Apenas agendamentos com status \"agendado\" podem ser reagendados"}`, http.StatusConflict)
		return
	}

	newDate := req.ScheduledDate
	newTime := req.ScheduledTime
	if newDate == "" {
		newDate = appt.ScheduledDate.Format("2006-01-02")
	}
	if newTime == "" {
		newTime = appt.ScheduledTime
	}
	if newDate == appt.ScheduledDate.Format("2006-01-02") && newTime == appt.ScheduledTime {
		http.Error(w, `{"error":"Selecione uma nova data ou horário para reagendar"}`, http.StatusBadRequest)
		return
	}
	date, slot, errMsg := parseDateAndSlot(newDate, newTime)
	if errMsg != "" {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, errMsg), http.StatusBadRequest)
		return
	}

	updated, err := repo.RescheduleAppointment(r.Context(), h.Pool, id, userID, date, slot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Status mudou entre a leitura e o update.
			http.Error(w, `{"error":"Apenas agendamentos com status \"agendado\" podem ser reagendados"}`, http.StatusConflict)
			return
		}
		log.Printf("[appointments] reagendamento %s falhou: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// AppointmentVoucher gera o comprovante em PDF do agendamento.
func (h *Handler) AppointmentVoucher(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, `{"error":"id de agendamento inválido"}`, http.StatusBadRequest)
		return
	}
	appt, err := repo.AppointmentByIDAndUser(r.Context(), h.Pool, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, `{"error":"Agendamento não encontrado."}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	if appt.Status == repo.StatusCancelled {
		http.Error(w, `{"error":"Agendamento cancelado não tem comprovante."}`, http.StatusConflict)
		return
	}

	exam, err := repo.ExamByID(r.Context(), h.Pool, appt.ExamID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	unit, err := repo.UnitByID(r.Context(), h.Pool, appt.UnitID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	user, err := repo.UserByID(r.Context(), h.Pool, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	var fullName string
	if p, err := repo.ProfileByID(r.Context(), h.Pool, userID); err == nil && p.FullName != nil {
		fullName = *p.FullName
	}

	v := pdf.Voucher{
		Code:          appt.ID.String(),
		PatientName:   fullName,
		PatientEmail:  user.Email,
		ExamName:      exam.Name,
		ExamCategory:  exam.Category,
		Preparation:   exam.Preparation,
		FastingHours:  exam.FastingHours,
		UnitName:      unit.Name,
		UnitCity:      unit.City,
		UnitAddress:   unit.Address + ", " + unit.Neighborhood,
		ScheduledDate: appt.ScheduledDate.Format("02/01/2006"),
		ScheduledTime: appt.ScheduledTime,
		IssuedAt:      time.Now().Format("02/01/2006 15:04"),
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=comprovante-%s.pdf", appt.ID))
	if err := pdf.WriteVoucherTo(v, w); err != nil {
		log.Printf("[appointments] geração de comprovante %s falhou: %v", id, err)
	}
}
