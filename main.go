package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlineAreda/app-e2elab/internal/api"
	"github.com/AlineAreda/app-e2elab/internal/config"
	"github.com/AlineAreda/app-e2elab/internal/crypto"
	"github.com/AlineAreda/app-e2elab/internal/middleware"
	"github.com/AlineAreda/app-e2elab/internal/migrate"
	"github.com/AlineAreda/app-e2elab/internal/seed"
)

func main() {
	cfg := config.Load()

	// Rotas administrativas não podem cair em credencial pública: sem
	// ADMIN_API_KEY o processo não sobe.
	if cfg.AdminAPIKey == "" {
		log.Fatal("ADMIN_API_KEY não definida; as rotas administrativas exigem chave de serviço própria")
	}

	keys, err := crypto.ParseKeysEnv(cfg.DataEncryptionKeys)
	if err != nil {
		log.Fatalf("DATA_ENCRYPTION_KEYS: %v", err)
	}
	if _, ok := keys[cfg.CurrentDataKeyVer]; !ok {
		log.Fatalf("CURRENT_DATA_KEY_VERSION %q sem chave correspondente", cfg.CurrentDataKeyVer)
	}

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("config postgres: %v", err)
		}
		if cfg.DBMaxConns > 0 {
			poolConfig.MaxConns = int32(cfg.DBMaxConns)
		}
		if cfg.DBMinConns > 0 {
			poolConfig.MinConns = int32(cfg.DBMinConns)
		}
		if cfg.DBMaxConnLifetime > 0 {
			poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
		}
		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			log.Fatalf("conexão postgres: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping postgres: %v", err)
		}
		if err := migrate.Run(context.Background(), pool, "migrations"); err != nil {
			log.Fatalf("migrations: %v", err)
		}
		if err := seed.Run(context.Background(), pool); err != nil {
			log.Printf("seed (ignored if already applied): %v", err)
		}
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if pool == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"no database"}`))
			return
		}
		if err := pool.Ping(context.Background()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"db unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	h := api.NewHandler(pool, cfg)
	h.Keys = keys

	// Limite por IP apenas nas rotas de credencial.
	authLimiter := middleware.NewRateLimiter(1, 5)

	public := r.PathPrefix("/api").Subrouter()
	public.Handle("/auth/signup", authLimiter.Middleware(http.HandlerFunc(h.Signup))).Methods(http.MethodPost)
	public.Handle("/auth/login", authLimiter.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	public.Handle("/auth/resolve", authLimiter.Middleware(http.HandlerFunc(h.Resolve))).Methods(http.MethodPost)
	public.HandleFunc("/swagger.json", h.SwaggerJSON).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	protected.HandleFunc("/exams", h.ListExams).Methods(http.MethodGet)
	protected.HandleFunc("/exams/{id}", h.GetExam).Methods(http.MethodGet)
	protected.HandleFunc("/units", h.ListUnits).Methods(http.MethodGet)
	protected.HandleFunc("/slots", h.ListSlots).Methods(http.MethodGet)
	protected.HandleFunc("/available-dates", h.AvailableDates).Methods(http.MethodGet)
	protected.HandleFunc("/me/appointments", h.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/me/appointments", h.ListMyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/me/appointments/{id}/cancel", h.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/me/appointments/{id}", h.RescheduleAppointment).Methods(http.MethodPatch)
	protected.HandleFunc("/me/appointments/{id}/voucher", h.AppointmentVoucher).Methods(http.MethodGet)

	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(middleware.RequireServiceKey(cfg.AdminAPIKey))
	admin.HandleFunc("/users/delete", h.DeleteUserByEmail).Methods(http.MethodDelete)
	admin.HandleFunc("/exams/{id}", h.UpdateExam).Methods(http.MethodPut, http.MethodPatch)

	chain := middleware.Recover(middleware.RequestID(middleware.Timeout(cfg.RequestTimeoutSec)(middleware.CORS(cfg.CORSOrigins)(middleware.Gzip(r)))))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("e2elab backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("e2elab backend stopped")
}
