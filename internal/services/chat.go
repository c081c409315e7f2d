package services

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/myrjola/trackside/internal/api"
	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
)

type ChatService struct {
	api    *api.Client
	logger *slog.Logger
}

func NewChatService(client *api.Client, logger *slog.Logger) *ChatService {
	return &ChatService{
		api:    client,
		logger: logger.With("source", "ChatService"),
	}
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Send posts one user message and returns the assistant's replies.
func (s *ChatService) Send(ctx context.Context, sessionID, message string) ([]models.ChatMessage, error) {
	var replies []models.ChatMessage
	payload := chatRequest{SessionID: sessionID, Message: message}
	if err := s.api.Post(ctx, "/chat", payload, &replies); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "chat send degraded",
			slog.String("sessionId", sessionID), errors.SlogError(err))
		return []models.ChatMessage{}, errors.Wrap(err, "send chat message")
	}
	return replies, nil
}

// History fetches the server-side message list for a session.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	query := url.Values{}
	query.Set("sessionId", sessionID)

	var messages []models.ChatMessage
	if err := s.api.Get(ctx, "/chat?"+query.Encode(), &messages); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "chat history degraded",
			slog.String("sessionId", sessionID), errors.SlogError(err))
		return []models.ChatMessage{}, errors.Wrap(err, "fetch chat history")
	}
	return messages, nil
}
