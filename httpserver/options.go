package httpserver

import (
	"errors"
	"fmt"
	"strings"

	"contactsui/contact"
	"contactsui/pkg/config"

	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		if cfg == nil {
			return errors.New("httpserver: nil config")
		}
		s.Config = cfg
		if cfg.Port > 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		if cfg.AllowOrigins != "" {
			s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
		}
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l != nil {
			s.Logger = l
		}
		return nil
	}
}

func WithContactService(svc contact.Service) Options {
	return func(s *Server) error {
		s.ContactService = svc
		return nil
	}
}

func WithAddr(addr string) Options {
	return func(s *Server) error {
		s.Addr = addr
		return nil
	}
}
