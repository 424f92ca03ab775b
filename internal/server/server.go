package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"marketdata-normalizer/internal/database"
	"marketdata-normalizer/internal/domain"
	"marketdata-normalizer/internal/exchange"
	"marketdata-normalizer/internal/platform/config"
)

type FiberServer struct {
	*fiber.App

	config        *config.Config
	db            database.Service
	logger        *zap.Logger
	journalLogger *zap.Logger
}

// New builds the server. db may be nil, in which case trades are not
// journaled.
func New(cfg *config.Config, db database.Service, logger *zap.Logger, journalLogger *zap.Logger) *FiberServer {
	server := &FiberServer{
		config:        cfg,
		db:            db,
		logger:        logger,
		journalLogger: journalLogger,
	}

	server.App = fiber.New(fiber.Config{
		ServerHeader: cfg.Server.AppName,
		AppName:      cfg.Server.AppName,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: server.errorHandler,
	})

	return server
}

func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	code := statusCode(err)
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed: "+err.Error(), zap.String("path", c.Path()))
	} else {
		s.logger.Warn("Request rejected: "+err.Error(), zap.String("path", c.Path()), zap.Int("status", code))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func statusCode(err error) int {
	var fiberErr *fiber.Error
	var moneyErr *domain.MoneyFormatError
	var rangeErr *domain.TimeRangeError
	var unknownErr *exchange.UnknownExchangeError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &moneyErr), errors.As(err, &rangeErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &unknownErr):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
