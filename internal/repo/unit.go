package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Unit struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Neighborhood string    `json:"neighborhood"`
	Phone        string    `json:"phone"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListActiveUnits retorna as unidades ativas agrupadas por cidade.
func ListActiveUnits(ctx context.Context, pool *pgxpool.Pool) ([]Unit, error) {
	rows, err := pool.Query(ctx, `
		SELECT id, name, city, address, neighborhood, phone, active, created_at
		FROM units WHERE active = true ORDER BY city, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.City, &u.Address, &u.Neighborhood, &u.Phone, &u.Active, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func UnitByID(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (*Unit, error) {
	var u Unit
	err := pool.QueryRow(ctx, `
		SELECT id, name, city, address, neighborhood, phone, active, created_at
		FROM units WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.City, &u.Address, &u.Neighborhood, &u.Phone, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
