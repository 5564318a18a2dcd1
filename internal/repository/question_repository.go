package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

// QuestionRepository encapsulates question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	List(ctx context.Context) ([]domain.Question, error)
	ListByCourse(ctx context.Context, courseID string) ([]domain.Question, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type questionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository instantiates the Postgres-backed repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepository{pool: pool}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	const query = `
        INSERT INTO questions (course_id, text, option_a, option_b, option_c, option_d, correct_answer, difficulty, topic)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		question.CourseID,
		question.Text,
		question.OptionA,
		question.OptionB,
		question.OptionC,
		question.OptionD,
		question.CorrectAnswer,
		question.Difficulty,
		question.Topic,
	).Scan(&question.ID, &question.CreatedAt)
}

func (r *questionRepository) List(ctx context.Context) ([]domain.Question, error) {
	const query = `
        SELECT id, course_id, text, option_a, option_b, option_c, option_d, correct_answer, difficulty, topic, created_at
        FROM questions ORDER BY created_at`
	return r.fetchMany(ctx, query)
}

func (r *questionRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Question, error) {
	const query = `
        SELECT id, course_id, text, option_a, option_b, option_c, option_d, correct_answer, difficulty, topic, created_at
        FROM questions WHERE course_id=$1 ORDER BY created_at`
	return r.fetchMany(ctx, query, courseID)
}

func (r *questionRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.CourseID,
			&question.Text,
			&question.OptionA,
			&question.OptionB,
			&question.OptionC,
			&question.OptionD,
			&question.CorrectAnswer,
			&question.Difficulty,
			&question.Topic,
			&question.CreatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (r *questionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewNotFound("question", map[string]any{"id": id})
	}
	return nil
}

func (r *questionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
