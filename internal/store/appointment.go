package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"campus-portal-api/internal/model"
)

const appointmentCols = `id, student_id, student_name, lecturer_id, lecturer_name,
	title, description, date, start_time, end_time, status, created_at`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(&a.ID, &a.StudentID, &a.StudentName, &a.LecturerID, &a.LecturerName,
		&a.Title, &a.Description, &a.Date, &a.StartTime, &a.EndTime, &a.Status, &a.CreatedAt)
	a.CreatedAt = a.CreatedAt.UTC()
	return a, err
}

func (s *Store) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	a, err := scanAppointment(s.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return model.Appointment{}, notFound(err, "appointment", id)
	}
	return a, nil
}

func (s *Store) PutAppointment(ctx context.Context, a model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (`+appointmentCols+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 ON CONFLICT (id) DO UPDATE SET
		   student_id=$2, student_name=$3, lecturer_id=$4, lecturer_name=$5,
		   title=$6, description=$7, date=$8, start_time=$9, end_time=$10,
		   status=$11, created_at=$12`,
		a.ID, a.StudentID, a.StudentName, a.LecturerID, a.LecturerName,
		a.Title, a.Description, a.Date, a.StartTime, a.EndTime, a.Status, a.CreatedAt,
	)
	return err
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "appointments", id)
}

func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+appointmentCols+` FROM appointments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
