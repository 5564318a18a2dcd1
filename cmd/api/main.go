package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/skillforge/backend/internal/api/http"
	"github.com/skillforge/backend/internal/api/http/handlers"
	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/config"
	"github.com/skillforge/backend/internal/events"
	"github.com/skillforge/backend/internal/observability"
	"github.com/skillforge/backend/internal/persistence"
	"github.com/skillforge/backend/internal/repository"
	"github.com/skillforge/backend/internal/service"
	"github.com/skillforge/backend/internal/validator"
	"github.com/skillforge/backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo     repository.UserRepository
		courseRepo   repository.CourseRepository
		examRepo     repository.ExamRepository
		questionRepo repository.QuestionRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		courseRepo = repository.NewCourseRepository(pool)
		examRepo = repository.NewExamRepository(pool)
		questionRepo = repository.NewQuestionRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
		courseRepo = repository.NewMemoryCourseRepository()
		examRepo = repository.NewMemoryExamRepository()
		questionRepo = repository.NewMemoryQuestionRepository()
	}

	guard := auth.NewGuard()
	validate := validator.New()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	identityService := service.NewIdentityService(cfg.Auth, service.IdentityDependencies{
		UserRepo:   userRepo,
		Guard:      guard,
		Validator:  validate,
		Dispatcher: dispatcher,
	})
	courseService := service.NewCourseService(courseRepo, guard, validate, dispatcher)
	examService := service.NewExamService(examRepo, courseRepo, guard, validate, dispatcher)
	questionService := service.NewQuestionService(questionRepo, courseRepo, guard, validate, dispatcher)
	dashboardService := service.NewDashboardService(userRepo, courseRepo, examRepo, questionRepo, guard, redis.Handle(), cfg.Auth.DashboardCacheTTL)

	authMiddleware := auth.NewMiddleware(identityService)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(identityService),
		Users:          handlers.NewUsersHandler(identityService),
		Courses:        handlers.NewCoursesHandler(courseService),
		Exams:          handlers.NewExamsHandler(examService),
		Questions:      handlers.NewQuestionsHandler(questionService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
