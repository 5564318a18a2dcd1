package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

// In-memory repositories back the service when no Postgres DSN is configured
// and serve as the storage seam for service-level tests. They uphold the same
// contracts as the Postgres implementations; in particular user creation is a
// compare-and-insert under a single lock.

type memoryUserRepository struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns an in-memory credential store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return util.NewConflict("email already registered", map[string]any{"email": user.Email})
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, util.NewNotFound("user", map[string]any{"id": id})
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, util.NewNotFound("user", nil)
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, util.NewNotFound("user", map[string]any{"id": id})
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	r.byID[id] = user
	return &user, nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, user)
	}
	return users, nil
}

func (r *memoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memoryUserRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.byID))
	r.byID = make(map[string]domain.User)
	r.byEmail = make(map[string]string)
	return deleted, nil
}

type memoryCourseRepository struct {
	mu      sync.Mutex
	courses map[string]domain.Course
	order   []string
}

// NewMemoryCourseRepository returns an in-memory course repository.
func NewMemoryCourseRepository() CourseRepository {
	return &memoryCourseRepository{courses: make(map[string]domain.Course)}
}

func (r *memoryCourseRepository) Create(_ context.Context, course *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	course.ID = uuid.NewString()
	course.CreatedAt = time.Now()
	r.courses[course.ID] = *course
	r.order = append(r.order, course.ID)
	return nil
}

func (r *memoryCourseRepository) GetByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.courses[id]
	if !ok {
		return nil, util.NewNotFound("course", map[string]any{"id": id})
	}
	return &course, nil
}

func (r *memoryCourseRepository) List(_ context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses := make([]domain.Course, 0, len(r.order))
	for _, id := range r.order {
		if course, ok := r.courses[id]; ok {
			courses = append(courses, course)
		}
	}
	return courses, nil
}

func (r *memoryCourseRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return util.NewNotFound("course", map[string]any{"id": id})
	}
	delete(r.courses, id)
	return nil
}

func (r *memoryCourseRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.courses)), nil
}

type memoryExamRepository struct {
	mu    sync.Mutex
	exams map[string]domain.Exam
	order []string
}

// NewMemoryExamRepository returns an in-memory exam repository.
func NewMemoryExamRepository() ExamRepository {
	return &memoryExamRepository{exams: make(map[string]domain.Exam)}
}

func (r *memoryExamRepository) Create(_ context.Context, exam *domain.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	exam.ID = uuid.NewString()
	exam.CreatedAt = time.Now()
	r.exams[exam.ID] = *exam
	r.order = append(r.order, exam.ID)
	return nil
}

func (r *memoryExamRepository) GetByID(_ context.Context, id string) (*domain.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exam, ok := r.exams[id]
	if !ok {
		return nil, util.NewNotFound("exam", map[string]any{"id": id})
	}
	return &exam, nil
}

func (r *memoryExamRepository) List(_ context.Context) ([]domain.Exam, error) {
	return r.filter(func(domain.Exam) bool { return true })
}

func (r *memoryExamRepository) ListByCourse(_ context.Context, courseID string) ([]domain.Exam, error) {
	return r.filter(func(e domain.Exam) bool { return e.CourseID == courseID })
}

func (r *memoryExamRepository) filter(keep func(domain.Exam) bool) ([]domain.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var exams []domain.Exam
	for _, id := range r.order {
		if exam, ok := r.exams[id]; ok && keep(exam) {
			exams = append(exams, exam)
		}
	}
	return exams, nil
}

func (r *memoryExamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exams[id]; !ok {
		return util.NewNotFound("exam", map[string]any{"id": id})
	}
	delete(r.exams, id)
	return nil
}

func (r *memoryExamRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.exams)), nil
}

type memoryQuestionRepository struct {
	mu        sync.Mutex
	questions map[string]domain.Question
	order     []string
}

// NewMemoryQuestionRepository returns an in-memory question repository.
func NewMemoryQuestionRepository() QuestionRepository {
	return &memoryQuestionRepository{questions: make(map[string]domain.Question)}
}

func (r *memoryQuestionRepository) Create(_ context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	question.ID = uuid.NewString()
	question.CreatedAt = time.Now()
	r.questions[question.ID] = *question
	r.order = append(r.order, question.ID)
	return nil
}

func (r *memoryQuestionRepository) List(_ context.Context) ([]domain.Question, error) {
	return r.filter(func(domain.Question) bool { return true })
}

func (r *memoryQuestionRepository) ListByCourse(_ context.Context, courseID string) ([]domain.Question, error) {
	return r.filter(func(q domain.Question) bool { return q.CourseID == courseID })
}

func (r *memoryQuestionRepository) filter(keep func(domain.Question) bool) ([]domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var questions []domain.Question
	for _, id := range r.order {
		if question, ok := r.questions[id]; ok && keep(question) {
			questions = append(questions, question)
		}
	}
	return questions, nil
}

func (r *memoryQuestionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[id]; !ok {
		return util.NewNotFound("question", map[string]any{"id": id})
	}
	delete(r.questions, id)
	return nil
}

func (r *memoryQuestionRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.questions)), nil
}
