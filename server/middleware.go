package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"auctioneer/models"
	"auctioneer/service"
)

const (
	userContextKey = "auction_user"
	adminKeyHeader = "X-Admin-Key"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	log.WithFields(log.Fields{
		"method":  c.Request.Method,
		"path":    c.FullPath(),
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	}).Info("HTTP Request")
}

// Authenticator resolves the user behind a request. A request without valid
// credentials yields nil and no error.
type Authenticator interface {
	Authenticate(r *http.Request) (*models.User, error)
}

// SessionAuthenticator reads a session token from the session cookie or a
// bearer Authorization header
type SessionAuthenticator struct {
	users      service.UserService
	cookieName string
}

func NewSessionAuthenticator(users service.UserService, cookieName string) *SessionAuthenticator {
	return &SessionAuthenticator{users: users, cookieName: cookieName}
}

func (a *SessionAuthenticator) Authenticate(r *http.Request) (*models.User, error) {
	token := sessionToken(r, a.cookieName)
	if token == "" {
		return nil, nil
	}
	return a.users.ResolveSession(r.Context(), token)
}

func sessionToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// LoadUser attaches the authenticated user, if any, to the request context
func LoadUser(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request)
		if err != nil {
			log.WithError(err).Error("Failed to resolve session")
			abortWithError(c, http.StatusInternalServerError, err, "internal server error")
			return
		}
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RequireUser rejects requests without an authenticated user
func RequireUser(c *gin.Context) {
	if currentUser(c) == nil {
		abortWithError(c, http.StatusUnauthorized, service.ErrUnauthenticated, "authentication required")
		return
	}
	c.Next()
}

// RequireAdminKey rejects requests whose X-Admin-Key header is not accepted
// by isAdminKey
func RequireAdminKey(isAdminKey func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdminKey(c.GetHeader(adminKeyHeader)) {
			log.WithField("path", c.Request.URL.Path).Warn("Rejected admin request")
			abortWithError(c, http.StatusForbidden, nil, "admin access required")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
