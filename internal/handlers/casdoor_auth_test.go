package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/formacentre/training-service/internal/config"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/utils"
)

func testAuthMiddleware() *CasdoorAuthMiddleware {
	return &CasdoorAuthMiddleware{
		routes: config.RouteConfig{
			Login:     "/login",
			Dashboard: "/dashboard",
		},
		logger: utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func userWithRoles(roles ...models.UserRole) *models.User {
	return &models.User{
		ID:    1,
		Email: "compte@example.fr",
		Roles: datatypes.JSONSlice[models.UserRole](roles),
	}
}

// injectUser stands in for AuthMiddleware in guard tests: it stores an
// already resolved user the way the real middleware does.
func injectUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

func performRequest(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_UnauthenticatedRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cam := testAuthMiddleware()

	router := gin.New()
	router.GET("/protected", cam.AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(router)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302 redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/login" {
		t.Errorf("Expected redirect to /login, got %s", location)
	}
}

func TestRequireRole_UnderprivilegedRedirectsToDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cam := testAuthMiddleware()

	router := gin.New()
	router.GET("/protected",
		injectUser(userWithRoles(models.RoleStudent)),
		cam.RequireSecretary(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := performRequest(router)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302 redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %s", location)
	}
}

func TestRequireRole_PrecedenceAndSiblings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cam := testAuthMiddleware()

	tests := []struct {
		name       string
		roles      []models.UserRole
		guard      gin.HandlerFunc
		wantStatus int
	}{
		{"admin passes secretary guard", []models.UserRole{models.RoleAdmin, models.RoleStudent}, cam.RequireSecretary(), http.StatusOK},
		{"secretary passes secretary guard", []models.UserRole{models.RoleSecretary, models.RoleStudent}, cam.RequireSecretary(), http.StatusOK},
		{"teacher does not pass instructor guard", []models.UserRole{models.RoleTeacher, models.RoleStudent}, cam.RequireInstructor(), http.StatusFound},
		{"instructor does not pass teacher guard", []models.UserRole{models.RoleInstructor, models.RoleStudent}, cam.RequireTeacher(), http.StatusFound},
		{"student passes student guard", []models.UserRole{models.RoleStudent}, cam.RequireStudent(), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/protected",
				injectUser(userWithRoles(tt.roles...)),
				tt.guard,
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			w := performRequest(router)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestRequireRole_MissingUserRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cam := testAuthMiddleware()

	router := gin.New()
	router.GET("/protected", cam.RequireSecretary(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(router)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302 redirect, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/login" {
		t.Errorf("Expected redirect to /login, got %s", location)
	}
}
