// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"time"

	"github.com/danielhkuo/propbowl/models"
)

func (s *Store) CreateInvite(ctx context.Context, phone, displayName string, invitedBy *string) (models.Invite, error) {
	inv := models.Invite{
		ID:          newID(),
		Phone:       phone,
		DisplayName: displayName,
		InvitedBy:   invitedBy,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.exec(ctx, `
		INSERT INTO invite (id, phone, display_name, invited_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, inv.ID, inv.Phone, inv.DisplayName, inv.InvitedBy, inv.CreatedAt)
	if err != nil {
		return models.Invite{}, err
	}
	return inv, nil
}

func (s *Store) ListInvites(ctx context.Context) ([]models.Invite, error) {
	rows, err := s.query(ctx, `
		SELECT id, phone, display_name, invited_by, is_claimed, created_at
		FROM invite
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := []models.Invite{}
	for rows.Next() {
		var inv models.Invite
		if err := rows.Scan(&inv.ID, &inv.Phone, &inv.DisplayName, &inv.InvitedBy,
			&inv.IsClaimed, &inv.CreatedAt); err != nil {
			return nil, wrap(err)
		}
		invites = append(invites, inv)
	}
	return invites, wrap(rows.Err())
}

// ClaimInvite marks the invite for phone as claimed. Returns false when no
// unclaimed invite exists.
func (s *Store) ClaimInvite(ctx context.Context, phone string) (bool, error) {
	res, err := s.exec(ctx, `
		UPDATE invite SET is_claimed = TRUE WHERE phone = $1 AND is_claimed = FALSE
	`, phone)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err)
	}
	return n > 0, nil
}
