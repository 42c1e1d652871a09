package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Profile são os dados cadastrais do paciente. O CPF fica criptografado
// (AES-GCM, chave versionada) com um hash determinístico para busca.
type Profile struct {
	ID            uuid.UUID
	FullName      *string
	Phone         *string
	BirthDate     *string
	CPFEncrypted  []byte
	CPFNonce      []byte
	CPFKeyVersion *string
	CPFHash       *string
}

func ProfileByID(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := pool.QueryRow(ctx, `
		SELECT id, full_name, phone, birth_date::text, cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash
		FROM profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.FullName, &p.Phone, &p.BirthDate, &p.CPFEncrypted, &p.CPFNonce, &p.CPFKeyVersion, &p.CPFHash)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UserEmailByCPFHash resolve um CPF (via hash) para o e-mail de login.
// É o resolvedor de identidade do login: CPF não cadastrado retorna pgx.ErrNoRows.
func UserEmailByCPFHash(ctx context.Context, pool *pgxpool.Pool, cpfHash string) (string, error) {
	var email string
	err := pool.QueryRow(ctx, `
		SELECT u.email FROM profiles p JOIN users u ON u.id = p.id WHERE p.cpf_hash = $1
	`, cpfHash).Scan(&email)
	return email, err
}

// CompleteProfile preenche a linha criada pelo trigger de signup; se o
// trigger não tiver rodado, insere direto (upsert).
func CompleteProfile(ctx context.Context, pool *pgxpool.Pool, p *Profile) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO profiles (id, full_name, phone, birth_date, cpf_encrypted, cpf_nonce, cpf_key_version, cpf_hash)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			birth_date = EXCLUDED.birth_date,
			cpf_encrypted = EXCLUDED.cpf_encrypted,
			cpf_nonce = EXCLUDED.cpf_nonce,
			cpf_key_version = EXCLUDED.cpf_key_version,
			cpf_hash = EXCLUDED.cpf_hash,
			updated_at = now()
	`, p.ID, p.FullName, p.Phone, p.BirthDate, p.CPFEncrypted, p.CPFNonce, p.CPFKeyVersion, p.CPFHash)
	return err
}

// DeleteProfile remove o perfil; ausência não é erro para o fluxo admin,
// mas o chamador decide o que logar.
func DeleteProfile(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	tag, err := pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
