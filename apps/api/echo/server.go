package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/community"
	"github.com/trezcool/wiseconnect/core/lesson"
	"github.com/trezcool/wiseconnect/core/quiz"
	"github.com/trezcool/wiseconnect/core/user"
	"github.com/trezcool/wiseconnect/services/metrics"
)

type (
	ServerDeps struct {
		dig.In

		Conf         *core.Config
		Logger       core.Logger
		Validate     *validator.Validate
		Translator   ut.Translator
		Metrics      *metrics.Metrics
		UserSvc      *user.Service
		QuizSvc      *quiz.Service
		LessonSvc    *lesson.Service
		CommunitySvc *community.Service
	}

	Server struct {
		conf     *core.Config
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}

	healthResponse struct {
		Status string `json:"status"`
		Build  string `json:"build"`
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		conf:     deps.Conf,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup(deps)
	return s
}

func (s *Server) setup(deps ServerDeps) {
	conf := s.conf

	s.app.HideBanner = true
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: conf.Server.AllowOrigins}))
	s.app.Use(metricsMiddleware(deps.Metrics))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	api := s.app.Group("/api")
	api.GET("/health", s.health)

	registerQuizAPI(api, deps.QuizSvc, deps.Validate, deps.Metrics)
	registerLessonAPI(api, deps.LessonSvc, deps.Validate, deps.Metrics)
	registerCommunityAPI(api, deps.CommunitySvc, deps.Validate, deps.Metrics)
	registerUserAPI(api, deps.UserSvc, deps.Validate)
}

// Start blocks serving requests until the Server is shut down. Listening errors are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

// ShutdownSignal receives on SIGINT, SIGTERM or when a shutdown error reached the HTTP error handler.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // a shutdown is already pending
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}

func (s *Server) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok", Build: s.conf.Build})
}
