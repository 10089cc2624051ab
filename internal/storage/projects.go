package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/project-manager/internal/models"
)

// CreateProject вставляет новый проект и возвращает его с присвоенным ID.
func (s *Storage) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	const op = "storage.CreateProject"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO project (name, description, is_finished, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.IsFinished, nullInt64(p.UserID)).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetProject возвращает проект по ID или ErrNotFound.
func (s *Storage) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	const op = "storage.GetProject"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, name, description, is_finished, user_id
			  FROM project WHERE id = $1`
	p, err := scanProject(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProjects возвращает все проекты в порядке их создания.
func (s *Storage) ListProjects(ctx context.Context) ([]*models.Project, error) {
	const op = "storage.ListProjects"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, description, is_finished, user_id
		FROM project
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProject сохраняет name, description и is_finished проекта p.ID
// и возвращает запись в том виде, в котором она лежит в базе.
func (s *Storage) UpdateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	const op = "storage.UpdateProject"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE project
			  SET name = $1, description = $2, is_finished = $3
			  WHERE id = $4
			  RETURNING id, name, description, is_finished, user_id`
	updated, err := scanProject(s.DB.QueryRowContext(ctx, query,
		p.Name, p.Description, p.IsFinished, p.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteProject удаляет проект по ID; если строки не было — ErrNotFound.
func (s *Storage) DeleteProject(ctx context.Context, id int64) error {
	const op = "storage.DeleteProject"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM project WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p      models.Project
		userID sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsFinished, &userID); err != nil {
		return nil, err
	}
	if userID.Valid {
		p.UserID = &userID.Int64
	}
	return &p, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
