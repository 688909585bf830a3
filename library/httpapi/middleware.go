package httpapi

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

const (
	ctxKeySubject = "sub"
	ctxKeyRole    = "role"

	cronSecretHeader = "X-Cron-Secret"
	requestIDHeader  = "X-Request-ID"
)

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	return token, token != ""
}

func requireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, ErrMissingToken.Error())
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		c.Set(ctxKeySubject, claims.Subject)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

func requireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !roleOf(c).IsStaff() {
			abortWithError(c, http.StatusForbidden, "admin or librarian role required")
			return
		}

		c.Next()
	}
}

// requireCronSecretOrAdmin accepts the shared cron secret in X-Cron-Secret or as bearer token,
// otherwise an ADMIN token.
func requireCronSecretOrAdmin(cronSecret string, verifier TokenVerifier) gin.HandlerFunc {
	matchesSecret := func(candidate string) bool {
		return cronSecret != "" && subtle.ConstantTimeCompare([]byte(candidate), []byte(cronSecret)) == 1
	}

	return func(c *gin.Context) {
		if matchesSecret(c.GetHeader(cronSecretHeader)) {
			c.Set(ctxKeySubject, "cron")
			c.Next()

			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, ErrMissingToken.Error())
			return
		}

		if matchesSecret(token) {
			c.Set(ctxKeySubject, "cron")
			c.Next()

			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}

		if claims.Role != RoleAdmin {
			abortWithError(c, http.StatusForbidden, "admin role required")
			return
		}

		c.Set(ctxKeySubject, claims.Subject)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

// correlateRequest puts the request ID (a UUID from X-Request-ID, or a new one) into the context,
// all events appended while handling the request carry it as correlation ID.
func correlateRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := uuid.Parse(c.GetHeader(requestIDHeader))
		if err != nil {
			requestID = uuid.New()
		}

		c.Request = c.Request.WithContext(shell.WithCorrelationID(c.Request.Context(), requestID))
		c.Header(requestIDHeader, requestID.String())
		c.Next()
	}
}

func requestLogging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.InfoContext(c.Request.Context(), "http request",
			"request_id", c.Writer.Header().Get(requestIDHeader),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"subject", c.GetString(ctxKeySubject),
		)
	}
}

func subjectOf(c *gin.Context) string {
	return c.GetString(ctxKeySubject)
}

func roleOf(c *gin.Context) Role {
	v, _ := c.Get(ctxKeyRole)
	role, _ := v.(Role)

	return role
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
