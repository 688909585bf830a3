package httpapi

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"

	"github.com/AntonStoeckl/borrowdesk/library/automation"
	"github.com/AntonStoeckl/borrowdesk/library/desk"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	desk           *desk.Desk
	runner         *automation.Runner
	verifier       TokenVerifier
	cronSecret     string
	allowedOrigins []string
	logger         *slog.Logger
	validate       *validator.Validate
}

type Option func(*Server)

// WithCronSecret enables the shared secret for POST /notifications/automated.
func WithCronSecret(secret string) Option {
	return func(s *Server) {
		s.cronSecret = secret
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(d *desk.Desk, runner *automation.Runner, jwtSecret string, options ...Option) *Server {
	s := &Server{
		desk:           d,
		runner:         runner,
		verifier:       NewTokenVerifier(jwtSecret),
		allowedOrigins: []string{"*"},
		logger:         slog.Default(),
		validate:       newValidator(),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Handler returns the router wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", cronSecretHeader, requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(s.Router())
}

// Router registers all routes on a new gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), correlateRequest(), requestLogging(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/notifications/automated", requireCronSecretOrAdmin(s.cronSecret, s.verifier), s.runAutomation)

	secured := r.Group("")
	secured.Use(requireAuth(s.verifier))
	{
		secured.GET("/books", s.listBooks)
		secured.GET("/books/:id/availability", s.bookAvailability)
		secured.POST("/books/return", s.returnBook)

		secured.POST("/borrow-requests", s.submitBorrowRequest)
		secured.GET("/borrow-requests", s.listBorrowRequests)

		secured.GET("/fines", s.listFines)
		secured.POST("/fines/:id/pay", s.payFine)

		secured.GET("/notifications", s.listNotifications)
		secured.POST("/notifications/:id/read", s.markNotificationRead)

		staff := secured.Group("")
		staff.Use(requireStaff())
		staff.POST("/books", s.addBook)
		staff.POST("/books/:id/deactivate", s.deactivateBook)
		staff.POST("/books/:id/reactivate", s.reactivateBook)
		staff.PATCH("/borrow-requests/:id", s.decideBorrowRequest)
	}

	return r
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// bindJSON decodes the body into in and validates it.
func (s *Server) bindJSON(c *gin.Context, in any) error {
	if err := c.ShouldBindJSON(in); err != nil {
		return describeValidation(err)
	}

	if err := s.validate.Struct(in); err != nil {
		return describeValidation(err)
	}

	return nil
}
