package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	ExamID        uuid.UUID `json:"exam_id"`
	UnitID        uuid.UUID `json:"unit_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AppointmentDetail anexa os dados de exame e unidade exibidos na listagem.
type AppointmentDetail struct {
	Appointment
	ExamName     string `json:"exam_name"`
	ExamCategory string `json:"exam_category"`
	FastingHours int    `json:"fasting_hours"`
	UnitName     string `json:"unit_name"`
	UnitCity     string `json:"unit_city"`
	UnitAddress  string `json:"unit_address"`
}

func CreateAppointment(ctx context.Context, pool *pgxpool.Pool, userID, examID, unitID uuid.UUID, date time.Time, slot string) (*Appointment, error) {
	var a Appointment
	err := pool.QueryRow(ctx, `
		INSERT INTO appointments (user_id, exam_id, unit_id, scheduled_date, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, exam_id, unit_id, scheduled_date, scheduled_time, status, created_at, updated_at
	`, userID, examID, unitID, date, slot, StatusScheduled).
		Scan(&a.ID, &a.UserID, &a.ExamID, &a.UnitID, &a.ScheduledDate, &a.ScheduledTime, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AppointmentsByUser lista os agendamentos do usuário, mais recentes primeiro.
func AppointmentsByUser(ctx context.Context, pool *pgxpool.Pool, userID uuid.UUID) ([]AppointmentDetail, error) {
	rows, err := pool.Query(ctx, `
		SELECT a.id, a.user_id, a.exam_id, a.unit_id, a.scheduled_date, a.scheduled_time,
		       a.status, a.created_at, a.updated_at,
		       e.name, e.category, e.fasting_hours,
		       u.name, u.city, u.address
		FROM appointments a
		JOIN exams e ON e.id = a.exam_id
		JOIN units u ON u.id = a.unit_id
		WHERE a.user_id = $1
		ORDER BY a.scheduled_date DESC, a.scheduled_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []AppointmentDetail
	for rows.Next() {
		var d AppointmentDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.ExamID, &d.UnitID, &d.ScheduledDate, &d.ScheduledTime,
			&d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.ExamName, &d.ExamCategory, &d.FastingHours,
			&d.UnitName, &d.UnitCity, &d.UnitAddress); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// AppointmentByIDAndUser busca um agendamento sempre escopado pelo dono;
// id de outro usuário resulta em pgx.ErrNoRows, nunca em vazamento.
func AppointmentByIDAndUser(ctx context.Context, pool *pgxpool.Pool, id, userID uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := pool.QueryRow(ctx, `
		SELECT id, user_id, exam_id, unit_id, scheduled_date, scheduled_time, status, created_at, updated_at
		FROM appointments WHERE id = $1 AND user_id = $2
	`, id, userID).
		Scan(&a.ID, &a.UserID, &a.ExamID, &a.UnitID, &a.ScheduledDate, &a.ScheduledTime, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func CancelAppointment(ctx context.Context, pool *pgxpool.Pool, id, userID uuid.UUID) error {
	tag, err := pool.Exec(ctx, `
		UPDATE appointments SET status = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3 AND status = $4
	`, StatusCancelled, id, userID, StatusScheduled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func RescheduleAppointment(ctx context.Context, pool *pgxpool.Pool, id, userID uuid.UUID, date time.Time, slot string) (*Appointment, error) {
	var a Appointment
	err := pool.QueryRow(ctx, `
		UPDATE appointments SET scheduled_date = $1, scheduled_time = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4 AND status = $5
		RETURNING id, user_id, exam_id, unit_id, scheduled_date, scheduled_time, status, created_at, updated_at
	`, date, slot, id, userID, StatusScheduled).
		Scan(&a.ID, &a.UserID, &a.ExamID, &a.UnitID, &a.ScheduledDate, &a.ScheduledTime, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAppointmentsByUser remove todos os agendamentos do usuário (fluxo admin).
func DeleteAppointmentsByUser(ctx context.Context, pool *pgxpool.Pool, userID uuid.UUID) (int64, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM appointments WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
