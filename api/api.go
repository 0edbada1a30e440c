package api

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/embedviz/embedviz/pkg/embeddings"
	"github.com/embedviz/embedviz/pkg/logger"
	"github.com/embedviz/embedviz/web"
)

// Server is the API server for comparing embeddings over HTTP.
type Server struct {
	config   Config
	embedder embeddings.Embedder
	logger   *slog.Logger
	validate *validator.Validate
	app      *fiber.App
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewServer creates a new API server.
// The embedder is injected to allow sharing with other components
// (e.g., the compare command when run against the same provider).
func NewServer(config Config, embedder embeddings.Embedder, log *slog.Logger) (*Server, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		embedder: embedder,
		logger:   log,
		validate: newValidator(),
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/v1/models", s.handleListModels)
	app.Get("/v1/models/:name", s.handleShowModel)
	app.Post("/v1/compare", s.handleCompare)
	app.Post("/v1/compare/plot", s.handleComparePlot)

	// The embedded browser UI is registered last so API routes win.
	app.Use("/", adaptor.HTTPHandler(http.FileServerFS(web.FS)))

	return s, nil
}

// newValidator builds the request validator. Field names in validation
// messages come from the json tag so they match the wire format.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
		"model", s.config.Model,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
