package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AlineAreda/app-e2elab/internal/auth"
	"github.com/AlineAreda/app-e2elab/internal/cpf"
	"github.com/AlineAreda/app-e2elab/internal/crypto"
	"github.com/AlineAreda/app-e2elab/internal/repo"
)

const tokenTTL = 24 * time.Hour

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	CPF       string `json:"cpf"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"` // AAAA-MM-DD, opcional
}

type LoginRequest struct {
	// Identifier aceita e-mail ou CPF (com ou sem máscara).
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
}

// Signup cria a conta e completa o perfil. O gatilho do banco cria a linha
// esqueleto de profiles; aqui aguardamos ela aparecer antes do upsert com os
// dados reais, com fallback por upsert direto se o gatilho atrasar.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"corpo da requisição inválido"}`, http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if !ValidEmail(req.Email) {
		http.Error(w, `{"error":"E-mail inválido. Verifique o formato do e-mail."}`, http.StatusBadRequest)
		return
	}
	if !ValidPassword(req.Password) {
		http.Error(w, `{"error":"A senha deve ter pelo menos 6 caracteres."}`, http.StatusBadRequest)
		return
	}
	if req.FullName == "" {
		http.Error(w, `{"error":"Nome completo é obrigatório."}`, http.StatusBadRequest)
		return
	}
	if !cpf.Validate(req.CPF) {
		http.Error(w, `{"error":"CPF inválido. Verifique os dígitos informados."}`, http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	userID, err := repo.CreateUser(r.Context(), h.Pool, req.Email, hash)
	if err != nil {
		log.Printf("[auth] signup: criação de usuário falhou: %v", err)
		writeJSON(w, http.StatusConflict, map[string]string{"error": TranslateError(err)})
		return
	}

	// O gatilho on_user_created insere o esqueleto do perfil; três tentativas
	// com pausa de 500ms antes de seguir para o upsert direto.
	for i := 0; i < 3; i++ {
		if _, err := repo.ProfileByID(r.Context(), h.Pool, userID); err == nil {
			break
		} else if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[auth] signup: leitura de perfil: %v", err)
			break
		}
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
			http.Error(w, `{"error":"Tempo de espera esgotado. Tente novamente."}`, http.StatusGatewayTimeout)
			return
		}
	}

	normalized := cpf.Normalize(req.CPF)
	cpfHash := crypto.CPFHash(normalized)
	encCPF, nonce, err := crypto.Encrypt([]byte(normalized), h.Cfg.CurrentDataKeyVer, h.Keys)
	if err != nil {
		log.Printf("[auth] signup: criptografia de cpf falhou: %v", err)
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}

	p := &repo.Profile{
		ID:            userID,
		FullName:      &req.FullName,
		CPFEncrypted:  encCPF,
		CPFNonce:      nonce,
		CPFKeyVersion: &h.Cfg.CurrentDataKeyVer,
		CPFHash:       &cpfHash,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		p.Phone = &phone
	}
	if bd := strings.TrimSpace(req.BirthDate); bd != "" {
		p.BirthDate = &bd
	}
	if err := repo.CompleteProfile(r.Context(), h.Pool, p); err != nil {
		log.Printf("[auth] signup: completar perfil falhou: %v", err)
		writeJSON(w, http.StatusConflict, map[string]string{"error": TranslateError(err)})
		return
	}

	tok, err := auth.BuildJWT(h.Cfg.JWTSecret, userID.String(), auth.RolePatient, req.Email, tokenTTL)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{
		Token:     tok,
		ExpiresAt: time.Now().Add(tokenTTL),
		User: UserInfo{
			ID:       userID.String(),
			Email:    req.Email,
			FullName: req.FullName,
			Role:     auth.RolePatient,
		},
	})
}

// Login autentica por e-mail ou CPF. Um identificador com formato de CPF é
// resolvido para o e-mail pelo cpf_hash; o checksum não é exigido aqui, só
// no cadastro.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"corpo da requisição inválido"}`, http.StatusBadRequest)
		return
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		http.Error(w, `{"error":"Informe CPF ou e-mail e a senha."}`, http.StatusBadRequest)
		return
	}

	email := strings.ToLower(req.Identifier)
	if cpf.IsShaped(req.Identifier) {
		resolved, err := repo.UserEmailByCPFHash(r.Context(), h.Pool, crypto.CPFHash(cpf.Normalize(req.Identifier)))
		if err != nil {
			// CPF desconhecido responde igual a senha errada.
			genericLoginError(w)
			return
		}
		email = resolved
	}

	user, err := repo.UserByEmail(r.Context(), h.Pool, email)
	if err != nil {
		genericLoginError(w)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		genericLoginError(w)
		return
	}

	var fullName string
	if p, err := repo.ProfileByID(r.Context(), h.Pool, user.ID); err == nil && p.FullName != nil {
		fullName = *p.FullName
	}

	tok, err := auth.BuildJWT(h.Cfg.JWTSecret, user.ID.String(), auth.RolePatient, user.Email, tokenTTL)
	if err != nil {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{
		Token:     tok,
		ExpiresAt: time.Now().Add(tokenTTL),
		User: UserInfo{
			ID:       user.ID.String(),
			Email:    user.Email,
			FullName: fullName,
			Role:     auth.RolePatient,
		},
	})
}

type ResolveRequest struct {
	Identifier string `json:"identifier"`
}

type ResolveResponse struct {
	Registered bool   `json:"registered"`
	Email      string `json:"email,omitempty"`
}

// Resolve classifica o identificador como CPF ou e-mail e informa se há
// conta associada; a tela de login usa o resultado para encaminhar um
// identificador desconhecido ao cadastro.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"corpo da requisição inválido"}`, http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(req.Identifier)
	if id == "" {
		http.Error(w, `{"error":"Informe CPF ou e-mail."}`, http.StatusBadRequest)
		return
	}

	if cpf.IsShaped(id) {
		email, err := repo.UserEmailByCPFHash(r.Context(), h.Pool, crypto.CPFHash(cpf.Normalize(id)))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeJSON(w, http.StatusOK, ResolveResponse{Registered: false})
				return
			}
			http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, ResolveResponse{Registered: true, Email: email})
		return
	}

	email := strings.ToLower(id)
	if !ValidEmail(email) {
		http.Error(w, `{"error":"E-mail inválido. Verifique o formato do e-mail."}`, http.StatusBadRequest)
		return
	}
	if _, err := repo.UserByEmail(r.Context(), h.Pool, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, ResolveResponse{Registered: false})
			return
		}
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ResolveResponse{Registered: true, Email: email})
}

func genericLoginError(w http.ResponseWriter) {
	http.Error(w, `{"error":"Credenciais inválidas. Verifique seu CPF/e-mail e senha."}`, http.StatusUnauthorized)
}

// Me devolve o usuário autenticado com o perfil (CPF mascarado).
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(auth.UserIDFrom(r.Context()))
	if err != nil {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	user, err := repo.UserByID(r.Context(), h.Pool, userID)
	if err != nil {
		http.Error(w, `{"error":"Registro não encontrado."}`, http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  auth.RoleFrom(r.Context()),
	}
	if p, err := repo.ProfileByID(r.Context(), h.Pool, userID); err == nil {
		if p.FullName != nil {
			resp["full_name"] = *p.FullName
		}
		if p.Phone != nil {
			resp["phone"] = *p.Phone
		}
		if p.BirthDate != nil {
			resp["birth_date"] = *p.BirthDate
		}
		if len(p.CPFEncrypted) > 0 && p.CPFKeyVersion != nil {
			plain, err := crypto.Decrypt(p.CPFEncrypted, p.CPFNonce, *p.CPFKeyVersion, h.Keys)
			if err == nil && len(plain) == 11 {
				resp["cpf_masked"] = "***." + string(plain[3:6]) + ".***-" + string(plain[9:])
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
