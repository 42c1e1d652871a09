package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User é a linha de autenticação (credencial); os dados cadastrais ficam em Profile.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

func UserByEmail(ctx context.Context, pool *pgxpool.Pool, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := pool.QueryRow(ctx, `
		SELECT id, email, password_hash FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func UserByID(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (*User, error) {
	var u User
	err := pool.QueryRow(ctx, `
		SELECT id, email, password_hash FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, email, passwordHash string) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id
	`, email, passwordHash).Scan(&id)
	return id, err
}

// DeleteUser remove a linha de auth. As FKs de appointments não têm ON DELETE
// CASCADE: o chamador remove perfil e agendamentos antes (rota admin).
func DeleteUser(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	tag, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
