package server

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type reply struct {
	Kind  string `json:"kind"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// streamHandler answers every text message on the connection with exactly
// one reply, in order. A failing message does not close the stream. Work
// started for a message is cancelled once the connection is done.
func (s *FiberServer) streamHandler(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exchangeName := conn.Params("exchange")
	s.logger.Info("Stream opened for " + exchangeName)
	defer s.logger.Info("Stream closed for " + exchangeName)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Stream read failed: "+err.Error(), zap.String("exchange", exchangeName))
			}
			return
		}
		if messageType != websocket.TextMessage {
			s.logger.Warn("Ignoring non-text stream message", zap.Int("type", messageType))
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, s.handleMessage(ctx, exchangeName, message)); err != nil {
			s.logger.Error("Stream write failed: "+err.Error(), zap.String("exchange", exchangeName))
			return
		}
	}
}

func (s *FiberServer) handleMessage(ctx context.Context, exchangeName string, message []byte) []byte {
	var req request
	var out reply

	if err := json.Unmarshal(message, &req); err != nil {
		out.Error = "malformed message: " + err.Error()
	} else {
		out.Kind = req.Kind
		data, err := s.normalize(ctx, exchangeName, req)
		if err != nil {
			out.Error = err.Error()
		} else {
			out.Data = data
		}
	}

	replyBytes, err := json.Marshal(out)
	if err != nil {
		s.logger.Error("Failed to marshal stream reply: " + err.Error())
		replyBytes, _ = json.Marshal(reply{Kind: out.Kind, Error: "internal error"})
	}
	return replyBytes
}
