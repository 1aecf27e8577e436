package services

import (
	"log/slog"

	"github.com/formacentre/training-service/internal/cache"
	"github.com/formacentre/training-service/internal/events"
	"github.com/formacentre/training-service/internal/payment"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/validator"
)

// ServiceManager builds and holds every service with shared dependencies
type ServiceManager struct {
	Resolver    UserResolver
	Users       UserService
	Courses     CourseService
	Sessions    SessionService
	Enrollments EnrollmentService
	Payments    PaymentService
	Lessons     LessonService
	Planning    PlanningService
	Dashboard   DashboardService
	Documents   DocumentService
	Exports     ExportService
}

// ServiceManagerConfig holds the dependencies shared by all services
type ServiceManagerConfig struct {
	Repository   repositories.Repository
	Validator    *validator.Validator
	CacheManager *cache.CacheManager
	Publisher    events.EventPublisher
	Provider     payment.Provider
	Logger       *slog.Logger
}

// NewServiceManager wires all services
func NewServiceManager(cfg ServiceManagerConfig) *ServiceManager {
	sessions := NewSessionService(cfg.Repository, cfg.Validator, cfg.CacheManager, cfg.Publisher, cfg.Logger)

	return &ServiceManager{
		Resolver:    NewUserResolver(cfg.Repository.User(), cfg.Provider, cfg.Publisher, cfg.Logger),
		Users:       NewUserService(cfg.Repository, cfg.Logger),
		Courses:     NewCourseService(cfg.Repository, cfg.Validator, cfg.CacheManager, cfg.Logger),
		Sessions:    sessions,
		Enrollments: NewEnrollmentService(cfg.Repository, cfg.Validator, cfg.CacheManager, cfg.Publisher, cfg.Logger),
		Payments:    NewPaymentService(cfg.Repository, cfg.Validator, cfg.CacheManager, cfg.Publisher, cfg.Logger),
		Lessons:     NewLessonService(cfg.Repository, cfg.Validator, cfg.CacheManager, cfg.Publisher, cfg.Logger),
		Planning:    NewPlanningService(cfg.Repository, cfg.CacheManager, cfg.Logger),
		Dashboard:   NewDashboardService(cfg.Repository, sessions, cfg.CacheManager, cfg.Logger),
		Documents:   NewDocumentService(cfg.Repository, cfg.Logger),
		Exports:     NewExportService(cfg.Repository, cfg.Logger),
	}
}
