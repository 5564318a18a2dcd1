package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/internal/repository"
	"github.com/skillforge/backend/pkg/util"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardStats aggregates platform counts for the landing view.
type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalCourses   int64 `json:"total_courses"`
	TotalExams     int64 `json:"total_exams"`
	TotalQuestions int64 `json:"total_questions"`
}

// DashboardService computes aggregate stats, caching them briefly in Redis.
// A missing or unreachable cache degrades to direct repository counts.
type DashboardService struct {
	users     repository.UserRepository
	courses   repository.CourseRepository
	exams     repository.ExamRepository
	questions repository.QuestionRepository
	guard     *auth.Guard
	cache     *redis.Client
	cacheTTL  time.Duration
}

// NewDashboardService constructs the service. cache may be nil.
func NewDashboardService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	exams repository.ExamRepository,
	questions repository.QuestionRepository,
	guard *auth.Guard,
	cache *redis.Client,
	cacheTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		users:     users,
		courses:   courses,
		exams:     exams,
		questions: questions,
		guard:     guard,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Overview returns the aggregate counts for an authenticated caller.
func (s *DashboardService) Overview(ctx context.Context, actor *domain.User) (*DashboardStats, error) {
	if actor == nil || !s.guard.Authorize(actor.Role, auth.ResourceDashboard, auth.ActionRead) {
		return nil, util.NewForbidden("dashboard access denied")
	}

	if stats := s.fromCache(ctx); stats != nil {
		return stats, nil
	}

	stats := &DashboardStats{}
	var err error
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCourses, err = s.courses.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalExams, err = s.exams.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalQuestions, err = s.questions.Count(ctx); err != nil {
		return nil, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *DashboardService) toCache(ctx context.Context, stats *DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err()
}
