package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlineAreda/app-e2elab/internal/cache"
	"github.com/AlineAreda/app-e2elab/internal/config"
	"github.com/AlineAreda/app-e2elab/internal/schedule"
)

// catalogCacheTTL vale para as respostas de catálogo (exames e unidades).
const catalogCacheTTL = 30 * time.Second

type Handler struct {
	Pool  *pgxpool.Pool
	Cfg   *config.Config
	Cache *cache.TTL
	// Slots define de onde vem a disponibilidade de horários; trocável em teste.
	Slots schedule.AvailabilitySource
	// Keys são as chaves AES por versão para o CPF em repouso.
	Keys map[string][]byte
}

func NewHandler(pool *pgxpool.Pool, cfg *config.Config) *Handler {
	return &Handler{
		Pool:  pool,
		Cfg:   cfg,
		Cache: cache.New(catalogCacheTTL),
		Slots: schedule.NewRandomSource(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
