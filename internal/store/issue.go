package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"campus-portal-api/internal/model"
)

const issueCols = `id, title, description, category, location, student_id, student_name,
	status, comments, created_at, updated_at`

func scanIssue(row pgx.Row) (model.Issue, error) {
	var is model.Issue
	err := row.Scan(&is.ID, &is.Title, &is.Description, &is.Category, &is.Location,
		&is.StudentID, &is.StudentName, &is.Status, &is.Comments, &is.CreatedAt, &is.UpdatedAt)
	is.CreatedAt = is.CreatedAt.UTC()
	is.UpdatedAt = is.UpdatedAt.UTC()
	return is, err
}

func (s *Store) GetIssue(ctx context.Context, id string) (model.Issue, error) {
	is, err := scanIssue(s.pool.QueryRow(ctx,
		`SELECT `+issueCols+` FROM issues WHERE id = $1`, id))
	if err != nil {
		return model.Issue{}, notFound(err, "issue", id)
	}
	return is, nil
}

func (s *Store) PutIssue(ctx context.Context, is model.Issue) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO issues (`+issueCols+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (id) DO UPDATE SET
		   title=$2, description=$3, category=$4, location=$5, student_id=$6,
		   student_name=$7, status=$8, comments=$9, created_at=$10, updated_at=$11`,
		is.ID, is.Title, is.Description, is.Category, is.Location, is.StudentID,
		is.StudentName, is.Status, is.Comments, is.CreatedAt, is.UpdatedAt,
	)
	return err
}

func (s *Store) DeleteIssue(ctx context.Context, id string) (bool, error) {
	return s.deleteByID(ctx, "issues", id)
}

func (s *Store) ListIssues(ctx context.Context) ([]model.Issue, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+issueCols+` FROM issues ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Issue{}
	for rows.Next() {
		is, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, is)
	}
	return out, rows.Err()
}
