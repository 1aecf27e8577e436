package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/formacentre/training-service/internal/auth"
	"github.com/formacentre/training-service/internal/config"
	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/services"
	"github.com/formacentre/training-service/internal/utils"
)

// accessTokenCookie carries the token for browser navigation, where no
// Authorization header is available.
const accessTokenCookie = "access_token"

// CasdoorAuthMiddleware authenticates requests against Casdoor and
// resolves the principal into a local user row.
type CasdoorAuthMiddleware struct {
	client   *casdoorsdk.Client
	resolver services.UserResolver
	routes   config.RouteConfig
	logger   utils.Logger
}

// NewCasdoorAuthMiddleware creates the authentication middleware
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, routes config.RouteConfig, resolver services.UserResolver, logger utils.Logger) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &CasdoorAuthMiddleware{
		client:   client,
		resolver: resolver,
		routes:   routes,
		logger:   logger,
	}
}

// AuthMiddleware validates the token, syncs the user and stores both in
// the request context. Unauthenticated requests are redirected to the
// login page, never rejected with an error body.
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cam.extractToken(c)
		if token == "" {
			cam.redirectToLogin(c)
			return
		}

		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			cam.logger.Debug("Token validation failed", "error", err)
			cam.redirectToLogin(c)
			return
		}

		identity := auth.IdentityFromClaims(claims, token)
		user, err := cam.resolver.Resolve(c.Request.Context(), identity)
		if err != nil {
			cam.logger.Warn("User resolution failed", "error", err, "email", identity.Email)
			cam.redirectToLogin(c)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_roles", user.Roles)
		c.Set("user_email", user.Email)

		c.Next()
	}
}

// RequireRole guards a route group: users lacking the required role are
// redirected to their dashboard. Role checks follow precedence, so an
// admin passes a secretary guard, but teacher and instructor do not
// satisfy each other.
func (cam *CasdoorAuthMiddleware) RequireRole(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			cam.redirectToLogin(c)
			return
		}

		if !user.HasRole(required) {
			c.Redirect(http.StatusFound, cam.routes.Dashboard)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (cam *CasdoorAuthMiddleware) RequireOwner() gin.HandlerFunc {
	return cam.RequireRole(models.RoleOwner)
}

func (cam *CasdoorAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return cam.RequireRole(models.RoleAdmin)
}

func (cam *CasdoorAuthMiddleware) RequireSecretary() gin.HandlerFunc {
	return cam.RequireRole(models.RoleSecretary)
}

func (cam *CasdoorAuthMiddleware) RequireTeacher() gin.HandlerFunc {
	return cam.RequireRole(models.RoleTeacher)
}

func (cam *CasdoorAuthMiddleware) RequireInstructor() gin.HandlerFunc {
	return cam.RequireRole(models.RoleInstructor)
}

func (cam *CasdoorAuthMiddleware) RequireStudent() gin.HandlerFunc {
	return cam.RequireRole(models.RoleStudent)
}

func (cam *CasdoorAuthMiddleware) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func (cam *CasdoorAuthMiddleware) redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, cam.routes.Login)
	c.Abort()
}

// CurrentUser returns the resolved user stored by AuthMiddleware
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentUserID returns the resolved user id, 0 when unauthenticated
func CurrentUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
