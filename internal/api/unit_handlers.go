package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/AlineAreda/app-e2elab/internal/repo"
)

type unitListResponse struct {
	Units []repo.Unit `json:"units"`
}

// ListUnits devolve as unidades ativas ordenadas por cidade, com cache de 30s.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	if cached := h.Cache.Get("units:list"); cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}
	units, err := repo.ListActiveUnits(r.Context(), h.Pool)
	if err != nil {
		log.Printf("[units] listagem falhou: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": TranslateError(err)})
		return
	}
	if units == nil {
		units = []repo.Unit{}
	}
	body, err := json.Marshal(unitListResponse{Units: units})
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	h.Cache.Set("units:list", body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
