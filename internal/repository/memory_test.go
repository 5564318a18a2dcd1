package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

func TestMemoryUserRepositoryCompareAndInsert(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, &domain.User{
				Name:         "Racer",
				Email:        "race@x.com",
				PasswordHash: "hash",
				Role:         domain.RoleStudent,
			})
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else if !util.IsCode(err, util.CodeConflict) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestMemoryUserRepositoryEmailNormalization(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: domain.RoleStudent}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// uniqueness is case-insensitive
	err := repo.Create(ctx, &domain.User{Name: "B", Email: "A@X.COM", PasswordHash: "h", Role: domain.RoleStudent})
	if !util.IsCode(err, util.CodeConflict) {
		t.Errorf("err = %v, want conflict", err)
	}

	if _, err := repo.GetByEmail(ctx, "A@X.com"); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}
}

func TestMemoryUserRepositoryUpdateRole(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &domain.User{Name: "A", Email: "a@x.com", PasswordHash: "h", Role: domain.RoleStudent}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.UpdateRole(ctx, user.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want ADMIN", updated.Role)
	}

	if _, err := repo.UpdateRole(ctx, "missing", domain.RoleAdmin); !util.IsCode(err, util.CodeNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestMemoryCatalogRepositories(t *testing.T) {
	ctx := context.Background()

	courses := NewMemoryCourseRepository()
	course := &domain.Course{Title: "Algebra"}
	if err := courses.Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}

	exams := NewMemoryExamRepository()
	for _, title := range []string{"Midterm", "Final"} {
		if err := exams.Create(ctx, &domain.Exam{CourseID: course.ID, Title: title}); err != nil {
			t.Fatalf("create exam: %v", err)
		}
	}
	if err := exams.Create(ctx, &domain.Exam{CourseID: "other", Title: "Unrelated"}); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	byCourse, err := exams.ListByCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("list by course: %v", err)
	}
	if len(byCourse) != 2 {
		t.Errorf("len = %d, want 2", len(byCourse))
	}

	questions := NewMemoryQuestionRepository()
	if err := questions.Create(ctx, &domain.Question{CourseID: course.ID, Text: "2+2?", CorrectAnswer: "4"}); err != nil {
		t.Fatalf("create question: %v", err)
	}
	if err := questions.Delete(ctx, "missing"); !util.IsCode(err, util.CodeNotFound) {
		t.Errorf("err = %v, want not found", err)
	}

	count, err := questions.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
