package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"campus-portal-api/internal/model"
)

const notificationCols = `id, title, content, created_by, type, status, faculty,
	target_roles, created_at`

func scanNotification(row pgx.Row) (model.Notification, error) {
	var (
		n     model.Notification
		roles []string
	)
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedBy, &n.Type, &n.Status,
		&n.Faculty, &roles, &n.CreatedAt)
	n.CreatedAt = n.CreatedAt.UTC()
	n.TargetRoles = make([]model.Role, len(roles))
	for i, r := range roles {
		n.TargetRoles[i] = model.Role(r)
	}
	return n, err
}

func (s *Store) GetNotification(ctx context.Context, id string) (model.Notification, error) {
	n, err := scanNotification(s.pool.QueryRow(ctx,
		`SELECT `+notificationCols+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return model.Notification{}, notFound(err, "notification", id)
	}
	return n, nil
}

func (s *Store) PutNotification(ctx context.Context, n model.Notification) error {
	roles := make([]string, len(n.TargetRoles))
	for i, r := range n.TargetRoles {
		roles[i] = string(r)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO notifications (`+notificationCols+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET
		   title=$2, content=$3, created_by=$4, type=$5, status=$6,
		   faculty=$7, target_roles=$8, created_at=$9`,
		n.ID, n.Title, n.Content, n.CreatedBy, n.Type, n.Status, n.Faculty, roles, n.CreatedAt,
	)
	return err
}

func (s *Store) DeleteNotification(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "notifications", id)
}

func (s *Store) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+notificationCols+` FROM notifications ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
