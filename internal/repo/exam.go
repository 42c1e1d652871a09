package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Exam struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Duration        int       `json:"duration"`
	Price           float64   `json:"price"`
	Category        string    `json:"category"`
	Preparation     string    `json:"preparation"`
	FastingRequired bool      `json:"fasting_required"`
	FastingHours    int       `json:"fasting_hours"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const examColumns = `id, name, description, duration, price, category, preparation, fasting_required, fasting_hours, active, created_at, updated_at`

func scanExam(row pgx.Row) (*Exam, error) {
	var e Exam
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Duration, &e.Price, &e.Category,
		&e.Preparation, &e.FastingRequired, &e.FastingHours, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListActiveExams retorna os exames ativos em ordem alfabética.
func ListActiveExams(ctx context.Context, pool *pgxpool.Pool) ([]Exam, error) {
	rows, err := pool.Query(ctx, `
		SELECT `+examColumns+` FROM exams WHERE active = true ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// SearchActiveExams filtra por nome, descrição ou categoria (case-insensitive).
func SearchActiveExams(ctx context.Context, pool *pgxpool.Pool, q string) ([]Exam, error) {
	pattern := "%" + strings.TrimSpace(q) + "%"
	rows, err := pool.Query(ctx, `
		SELECT `+examColumns+` FROM exams
		WHERE active = true
		  AND (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		ORDER BY name
	`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func ExamByID(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) (*Exam, error) {
	return scanExam(pool.QueryRow(ctx, `
		SELECT `+examColumns+` FROM exams WHERE id = $1
	`, id))
}

// ExamUpdate carrega apenas os campos enviados no PUT/PATCH admin;
// ponteiro nulo = campo não alterado.
type ExamUpdate struct {
	Name            *string
	Description     *string
	Duration        *int
	Price           *float64
	Category        *string
	Preparation     *string
	FastingRequired *bool
	FastingHours    *int
	Active          *bool
}

// UpdateExam aplica só os campos presentes e retorna o registro atualizado.
func UpdateExam(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID, u *ExamUpdate) (*Exam, error) {
	sets := make([]string, 0, 9)
	args := make([]interface{}, 0, 10)
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if u.Name != nil {
		add("name", strings.TrimSpace(*u.Name))
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Duration != nil {
		add("duration", *u.Duration)
	}
	if u.Price != nil {
		add("price", *u.Price)
	}
	if u.Category != nil {
		add("category", strings.TrimSpace(*u.Category))
	}
	if u.Preparation != nil {
		add("preparation", *u.Preparation)
	}
	if u.FastingRequired != nil {
		add("fasting_required", *u.FastingRequired)
	}
	if u.FastingHours != nil {
		add("fasting_hours", *u.FastingHours)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	if len(sets) == 0 {
		return nil, pgx.ErrNoRows
	}
	args = append(args, id)
	q := fmt.Sprintf(`
		UPDATE exams SET %s, updated_at = now() WHERE id = $%d
		RETURNING `+examColumns,
		strings.Join(sets, ", "), len(args))
	return scanExam(pool.QueryRow(ctx, q, args...))
}
