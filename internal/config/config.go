package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   []byte
	CORSOrigins []string
	// Chave de serviço para as rotas administrativas (DELETE /api/users/delete,
	// PUT/PATCH /api/exams/{id}). Sem fallback para a credencial pública:
	// vazia = o main recusa subir.
	AdminAPIKey        string
	DataEncryptionKeys string
	CurrentDataKeyVer  string
	RequestTimeoutSec  int
	DBMaxConns         int
	DBMinConns         int
	DBMaxConnLifetime  time.Duration
}

func Load() *Config {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		jwtSecret = "default-secret-min-32-chars-required!!"
	}
	cors := os.Getenv("CORS_ORIGINS")
	if cors == "" {
		cors = "http://localhost:3000"
	}
	var origins []string
	for _, o := range strings.Split(cors, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	return &Config{
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          []byte(jwtSecret),
		CORSOrigins:        origins,
		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		DataEncryptionKeys: getEnv("DATA_ENCRYPTION_KEYS", "v1:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"),
		CurrentDataKeyVer:  getEnv("CURRENT_DATA_KEY_VERSION", "v1"),
		RequestTimeoutSec:  getEnvInt("REQUEST_TIMEOUT_SEC", 30),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 0),
		DBMinConns:         getEnvInt("DB_MIN_CONNS", 0),
		DBMaxConnLifetime:  time.Duration(getEnvInt("DB_MAX_CONN_LIFETIME_MIN", 0)) * time.Minute,
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
