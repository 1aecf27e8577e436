package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/config"
	"github.com/formacentre/training-service/internal/repositories"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
	"github.com/formacentre/training-service/internal/validator"
)

type HandlerManager struct {
	courseHandler     *CourseHandler
	sessionHandler    *SessionHandler
	enrollmentHandler *EnrollmentHandler
	paymentHandler    *PaymentHandler
	lessonHandler     *LessonHandler
	planningHandler   *PlanningHandler
	dashboardHandler  *DashboardHandler
	userHandler       *UserHandler
	authMiddleware    *CasdoorAuthMiddleware
	repoManager       repositories.RepositoryManager
}

func NewHandlerManager(
	sm *services.ServiceManager,
	v *validator.Validator,
	logger utils.Logger,
	cfg *config.Config,
	repoManager repositories.RepositoryManager,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(cfg.Casdoor, cfg.Routes, sm.Resolver, logger)

	return &HandlerManager{
		courseHandler:     NewCourseHandler(sm.Courses, logger),
		sessionHandler:    NewSessionHandler(sm.Sessions, sm.Exports, logger),
		enrollmentHandler: NewEnrollmentHandler(sm.Enrollments, logger),
		paymentHandler:    NewPaymentHandler(sm.Payments, sm.Exports, logger),
		lessonHandler:     NewLessonHandler(sm.Lessons, logger),
		planningHandler:   NewPlanningHandler(sm.Planning, logger),
		dashboardHandler:  NewDashboardHandler(sm.Dashboard, logger),
		userHandler:       NewUserHandler(sm.Users, sm.Documents, v, logger),
		authMiddleware:    authMiddleware,
		repoManager:       repoManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Catalog: everyone browses, back office manages
		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.POST("", hm.authMiddleware.RequireSecretary(), hm.courseHandler.CreateCourse)
			courses.PUT("/:id", hm.authMiddleware.RequireSecretary(), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireSecretary(), hm.courseHandler.DeactivateCourse)
		}

		// Sessions: everyone browses, secretaries schedule
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", hm.sessionHandler.ListSessions)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("", hm.authMiddleware.RequireSecretary(), hm.sessionHandler.ScheduleSession)
			sessions.PUT("/:id", hm.authMiddleware.RequireSecretary(), hm.sessionHandler.UpdateSession)
			sessions.DELETE("/:id", hm.authMiddleware.RequireSecretary(), hm.sessionHandler.CancelSession)
			sessions.GET("/:id/roster", hm.authMiddleware.RequireSecretary(), hm.sessionHandler.ExportRoster)
		}

		// Enrollments and payments: back office only
		enrollments := v1.Group("/enrollments", hm.authMiddleware.RequireSecretary())
		{
			enrollments.GET("", hm.enrollmentHandler.ListEnrollments)
			enrollments.GET("/:id", hm.enrollmentHandler.GetEnrollment)
			enrollments.POST("", hm.enrollmentHandler.CreateEnrollment)
			enrollments.PUT("/:id/status", hm.enrollmentHandler.UpdateEnrollmentStatus)
			enrollments.GET("/:id/balance", hm.paymentHandler.GetBalance)
		}

		payments := v1.Group("/payments", hm.authMiddleware.RequireSecretary())
		{
			payments.GET("", hm.paymentHandler.ListPayments)
			payments.POST("", hm.paymentHandler.RecordPayment)
			payments.GET("/ledger", hm.paymentHandler.ExportLedger)
		}

		// Lessons: secretaries book, instructors update their own slots
		lessons := v1.Group("/lessons")
		{
			lessons.GET("/:id", hm.lessonHandler.GetLesson)
			lessons.POST("", hm.authMiddleware.RequireSecretary(), hm.lessonHandler.BookLesson)
			lessons.PUT("/:id/status", hm.authMiddleware.RequireInstructor(), hm.lessonHandler.UpdateLessonStatus)
		}
		v1.GET("/vehicles", hm.lessonHandler.ListVehicles)

		// Planning: every authenticated user sees their own week
		v1.GET("/planning/me", hm.planningHandler.MyWeek)

		// Dashboards
		v1.GET("/dashboard/me", hm.dashboardHandler.MyOverview)
		v1.GET("/dashboard/admin", hm.authMiddleware.RequireAdmin(), hm.dashboardHandler.AdminOverview)

		// Users and documents
		users := v1.Group("/users")
		{
			users.GET("/me", hm.userHandler.Me)
			users.GET("/me/documents", hm.userHandler.MyDocuments)
			users.POST("/me/documents", hm.userHandler.SubmitDocument)
			users.GET("", hm.authMiddleware.RequireSecretary(), hm.userHandler.ListUsers)
			users.GET("/:id", hm.authMiddleware.RequireSecretary(), hm.userHandler.GetUser)
		}
		v1.PUT("/documents/:id/review", hm.authMiddleware.RequireSecretary(), hm.userHandler.ReviewDocument)
	}
}

// HealthCheck reports service and dependency health
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":    "healthy",
		"service":   "training-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := hm.repoManager.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}

	c.JSON(status, health)
}
