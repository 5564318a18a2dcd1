package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

// CourseRepository encapsulates course persistence.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository instantiates the Postgres-backed repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (title, description, instructor)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Instructor,
	).Scan(&course.ID, &course.CreatedAt)
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `
        SELECT id, title, description, instructor, created_at
        FROM courses WHERE id=$1`

	var course domain.Course
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Instructor,
		&course.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("course", map[string]any{"id": id})
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `
        SELECT id, title, description, instructor, created_at
        FROM courses ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.Instructor,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewNotFound("course", map[string]any{"id": id})
	}
	return nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
