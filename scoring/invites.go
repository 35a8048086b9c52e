// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/propbowl/models"
)

// CreateInvite records a phone number an admin expects to sign up. The
// invite is claimed when a profile with that phone is created.
func (s *Service) CreateInvite(ctx context.Context, actorID string, req models.CreateInviteRequest) (models.Invite, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Invite{}, err
	}

	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return models.Invite{}, err
	}
	name, err := normalizeDisplayName(req.DisplayName)
	if err != nil {
		return models.Invite{}, err
	}

	inv, err := s.store.CreateInvite(ctx, phone, name, &actorID)
	if err != nil {
		return models.Invite{}, fromStore(err, "invite")
	}
	slog.Info("invite created", "invite_id", inv.ID, "by", actorID)
	return inv, nil
}

func (s *Service) ListInvites(ctx context.Context, actorID string) ([]models.Invite, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	invites, err := s.store.ListInvites(ctx)
	return invites, fromStore(err, "invites")
}
