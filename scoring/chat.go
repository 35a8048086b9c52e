// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
)

const (
	maxMessageLen   = 500
	maxChatHistory  = 200
	defaultChatPage = 100
)

// PostMessage adds a text message or a GIF link to a contest's chat.
func (s *Service) PostMessage(ctx context.Context, userID, contestID string, req models.PostMessageRequest) (models.ChatMessage, error) {
	kind := req.Kind
	if kind == "" {
		kind = models.MessageText
	}
	message := strings.TrimSpace(req.Message)

	switch kind {
	case models.MessageText:
		if message == "" || utf8.RuneCountInString(message) > maxMessageLen {
			return models.ChatMessage{}, invalid("message must be 1-%d characters", maxMessageLen)
		}
	case models.MessageGIF:
		u, err := url.Parse(message)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return models.ChatMessage{}, invalid("gif must be an https URL")
		}
	default:
		return models.ChatMessage{}, invalid("unknown message kind %q", kind)
	}

	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		return models.ChatMessage{}, fromStore(err, "profile")
	}
	if _, err := s.store.GetContest(ctx, contestID); err != nil {
		return models.ChatMessage{}, fromStore(err, "contest")
	}
	m, err := s.store.CreateMessage(ctx, contestID, userID, kind, message)
	if err != nil {
		return models.ChatMessage{}, fromStore(err, "message")
	}

	s.notify(ctx, feed.TableChat, feed.ActionInsert, contestID, m.ID)
	return m, nil
}

// ListMessages returns the most recent messages, oldest first. limit is
// clamped to the history window.
func (s *Service) ListMessages(ctx context.Context, contestID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultChatPage
	}
	limit = min(limit, maxChatHistory)

	if _, err := s.store.GetContest(ctx, contestID); err != nil {
		return nil, fromStore(err, "contest")
	}
	messages, err := s.store.ListMessages(ctx, contestID, limit)
	return messages, fromStore(err, "messages")
}

// DeleteMessage removes a message. Authors may delete their own; anything
// else needs an admin.
func (s *Service) DeleteMessage(ctx context.Context, actorID, messageID string) error {
	m, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return fromStore(err, "message")
	}
	if m.UserID != actorID {
		if err := s.requireAdmin(ctx, actorID); err != nil {
			return err
		}
	}

	if err := s.store.DeleteMessage(ctx, messageID); err != nil {
		return fromStore(err, "message")
	}

	s.notify(ctx, feed.TableChat, feed.ActionDelete, m.ContestID, messageID)
	slog.Info("chat message deleted", "message_id", messageID, "by", actorID)
	return nil
}
