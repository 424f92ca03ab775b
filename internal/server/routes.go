package server

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"marketdata-normalizer/internal/exchange"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Use(requestid.New())
	s.App.Use(s.requestLogger)
	s.App.Use(recover.New())

	s.App.Get("/health", s.healthHandler)

	api := s.App.Group("/api/v1/:exchange")
	api.Post("/order", s.normalizeHandler(kindOrder))
	api.Post("/orders", s.normalizeHandler(kindOrders))
	api.Post("/orderbook", s.normalizeHandler(kindOrderBook))
	api.Post("/trades", s.normalizeHandler(kindTrades))
	api.Post("/ticker", s.normalizeHandler(kindTicker))

	s.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.App.Get("/ws/:exchange", websocket.New(s.streamHandler))
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	health := map[string]string{"status": "up", "journal": "disabled"}
	if s.db != nil {
		health = s.db.Health()
	}
	health["exchanges"] = strings.Join(exchange.Names(), ",")
	return c.JSON(health)
}

// normalizeHandler decodes the body as the payload of kind, with currency,
// side and base taken from the query string.
func (s *FiberServer) normalizeHandler(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := request{
			Kind:     kind,
			Currency: c.Query("currency"),
			Side:     c.Query("side"),
			Base:     c.Query("base"),
			Payload:  c.Body(),
		}

		output, err := s.normalize(c.UserContext(), c.Params("exchange"), req)
		if err != nil {
			return err
		}
		return c.JSON(output)
	}
}

func (s *FiberServer) requestLogger(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if handlerErr := s.App.ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info("Handled "+c.Method()+" "+c.Path(),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
	)
	return nil
}
