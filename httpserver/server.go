package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"contactsui/contact"
	"contactsui/contactui"
	"contactsui/errs"
	"contactsui/pkg/config"
	"contactsui/pkg/logger"
	"contactsui/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config
	Logger *zap.SugaredLogger

	ContactService contact.Service

	Sessions *SessionStore
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router: echo.New(),
		Addr:   ":8080",
		Config: config.Empty,
		Logger: logger.NOOPLogger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}
	if s.ContactService == nil {
		return nil, errors.New("httpserver: contact service is required")
	}

	wcfg := contactui.WorkspaceConfig{
		PageSize:         s.Config.UI.PageSize,
		SearchDebounce:   s.Config.UI.SearchDebounce,
		SearchResetsPage: s.Config.UI.SearchResetsPage,
		Logger:           s.Logger,
	}
	s.Sessions = NewSessionStore(func() *contactui.Workspace {
		return contactui.NewWorkspace(s.ContactService, wcfg)
	}, SessionOptions{
		TTL:         s.Config.UI.SessionTTL,
		MaxSessions: s.Config.UI.MaxSessions,
	})

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()

	s.RegisterHealthRoutes()
	s.RegisterContactRoutes(s.Router.Group("/ui"))

	return &s, nil
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     s.AllowOrigins,
			AllowCredentials: true,
		}))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

// Shutdown stops accepting requests, then drops every session.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Router.Shutdown(ctx)
	s.Sessions.Close()
	return err
}

// customHTTPErrorHandler maps application errors to HTTP status codes and
// reports server-side failures to sentry.
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = httpErrorMessage(he)
	} else if status := statusOf(err); status != http.StatusInternalServerError {
		code = status
		message = errs.ErrorMessage(err)
	}

	if code >= http.StatusInternalServerError {
		s.Logger.Errorw(err.Error(), "request_id", requestID(c), "path", c.Path())
		sentry.WithContext(c).Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = writeError(c, code, message, "", err)
		}
		if err != nil {
			s.Logger.Errorw("writing error response failed", "error", err)
		}
	}
}

func statusOf(err error) int {
	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	case errs.EUNAVAILABLE:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func httpErrorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
