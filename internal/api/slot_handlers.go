package api

import (
	"net/http"
	"time"

	"github.com/AlineAreda/app-e2elab/internal/schedule"
)

type slotsResponse struct {
	Date  string          `json:"date"`
	Slots []schedule.Slot `json:"slots"`
}

// ListSlots gera os horários de uma unidade em uma data (AAAA-MM-DD).
// Domingo não tem atendimento e responde 400.
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	unitID := r.URL.Query().Get("unit_id")
	dateStr := r.URL.Query().Get("date")
	if unitID == "" || dateStr == "" {
		http.Error(w, `{"error":"unit_id e date são obrigatórios"}`, http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, `{"error":"data inválida, use o formato AAAA-MM-DD"}`, http.StatusBadRequest)
		return
	}
	if date.Weekday() == time.Sunday {
		http.Error(w, `{"error":"unidade fechada aos domingos"}`, http.StatusBadRequest)
		return
	}
	if !schedule.IsBookable(date, time.Now()) {
		http.Error(w, `{"error":"data fora da janela de agendamento"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, slotsResponse{
		Date:  dateStr,
		Slots: schedule.Slots(date, unitID, h.Slots),
	})
}

// AvailableDates lista as datas abertas para agendamento: de amanhã até 30
// dias à frente, sem domingos.
func (h *Handler) AvailableDates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"dates": schedule.AvailableDates(time.Now()),
	})
}
