package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

// ExamRepository encapsulates exam persistence.
type ExamRepository interface {
	Create(ctx context.Context, exam *domain.Exam) error
	GetByID(ctx context.Context, id string) (*domain.Exam, error)
	List(ctx context.Context) ([]domain.Exam, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Exam, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type examRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository instantiates the Postgres-backed repository.
func NewExamRepository(pool *pgxpool.Pool) ExamRepository {
	return &examRepository{pool: pool}
}

func (r *examRepository) Create(ctx context.Context, exam *domain.Exam) error {
	const query = `
        INSERT INTO exams (course_id, title, duration_minutes, total_marks)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		exam.CourseID,
		exam.Title,
		exam.DurationMinutes,
		exam.TotalMarks,
	).Scan(&exam.ID, &exam.CreatedAt)
}

func (r *examRepository) GetByID(ctx context.Context, id string) (*domain.Exam, error) {
	const query = `
        SELECT id, course_id, title, duration_minutes, total_marks, created_at
        FROM exams WHERE id=$1`

	var exam domain.Exam
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&exam.ID,
		&exam.CourseID,
		&exam.Title,
		&exam.DurationMinutes,
		&exam.TotalMarks,
		&exam.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("exam", map[string]any{"id": id})
		}
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) List(ctx context.Context) ([]domain.Exam, error) {
	const query = `
        SELECT id, course_id, title, duration_minutes, total_marks, created_at
        FROM exams ORDER BY created_at`
	return r.fetchMany(ctx, query)
}

func (r *examRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Exam, error) {
	const query = `
        SELECT id, course_id, title, duration_minutes, total_marks, created_at
        FROM exams WHERE course_id=$1 ORDER BY created_at`
	return r.fetchMany(ctx, query, courseID)
}

func (r *examRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Exam, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []domain.Exam
	for rows.Next() {
		var exam domain.Exam
		if err := rows.Scan(
			&exam.ID,
			&exam.CourseID,
			&exam.Title,
			&exam.DurationMinutes,
			&exam.TotalMarks,
			&exam.CreatedAt,
		); err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

func (r *examRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewNotFound("exam", map[string]any{"id": id})
	}
	return nil
}

func (r *examRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
