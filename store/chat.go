// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/danielhkuo/propbowl/models"
)

// CreateMessage stores a chat message. DisplayName is filled in from the
// author's profile.
func (s *Store) CreateMessage(ctx context.Context, contestID, userID, kind, message string) (models.ChatMessage, error) {
	m := models.ChatMessage{
		ID:        newID(),
		ContestID: contestID,
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.exec(ctx, `
		INSERT INTO chat_message (id, contest_id, user_id, kind, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.ContestID, m.UserID, m.Kind, m.Message, m.CreatedAt)
	if err != nil {
		return models.ChatMessage{}, err
	}

	err = s.queryRow(ctx, `SELECT display_name FROM profile WHERE id = $1`, userID).Scan(&m.DisplayName)
	if err != nil {
		return models.ChatMessage{}, wrap(err)
	}
	return m, nil
}

func (s *Store) GetMessage(ctx context.Context, id string) (models.ChatMessage, error) {
	var m models.ChatMessage
	err := s.queryRow(ctx, `
		SELECT c.id, c.contest_id, c.user_id, p.display_name, c.kind, c.message, c.created_at
		FROM chat_message c
		JOIN profile p ON c.user_id = p.id
		WHERE c.id = $1
	`, id).Scan(&m.ID, &m.ContestID, &m.UserID, &m.DisplayName, &m.Kind, &m.Message, &m.CreatedAt)
	return m, wrap(err)
}

// ListMessages returns a contest's chat oldest first.
func (s *Store) ListMessages(ctx context.Context, contestID string, limit int) ([]models.ChatMessage, error) {
	rows, err := s.query(ctx, `
		SELECT id, contest_id, user_id, display_name, kind, message, created_at
		FROM (
			SELECT c.id, c.contest_id, c.user_id, p.display_name, c.kind, c.message, c.created_at
			FROM chat_message c
			JOIN profile p ON c.user_id = p.id
			WHERE c.contest_id = $1
			ORDER BY c.created_at DESC, c.id DESC
			LIMIT $2
		) recent
		ORDER BY created_at, id
	`, contestID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ContestID, &m.UserID, &m.DisplayName, &m.Kind,
			&m.Message, &m.CreatedAt); err != nil {
			return nil, wrap(err)
		}
		messages = append(messages, m)
	}
	return messages, wrap(rows.Err())
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM chat_message WHERE id = $1`, id)
}
