// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/propbowl/auth"
	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/store"
)

const maxDisplayNameLen = 20

func normalizeDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLen {
		return "", invalid("display name must be 1-%d characters", maxDisplayNameLen)
	}
	return name, nil
}

func normalizePhone(raw string) (string, error) {
	phone, err := auth.NormalizePhone(raw)
	if err != nil {
		return "", invalid("%v", err)
	}
	return phone, nil
}

// CreateProfile pre-provisions a player so they can sign in. A pending
// invite for the same phone is marked claimed.
func (s *Service) CreateProfile(ctx context.Context, actorID string, req models.CreateProfileRequest) (models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Profile{}, err
	}
	return s.createProfile(ctx, req, false)
}

// EnsureAdmin creates an administrator profile for phone unless one exists,
// and grants the admin flag to an existing profile. Used at startup to
// bootstrap an empty database.
func (s *Service) EnsureAdmin(ctx context.Context, phone, displayName string) (models.Profile, error) {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return models.Profile{}, err
	}

	p, err := s.store.GetProfileByPhone(ctx, normalized)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return s.createProfile(ctx, models.CreateProfileRequest{Phone: normalized, DisplayName: displayName}, true)
	case err != nil:
		return models.Profile{}, fromStore(err, "profile")
	case p.IsAdmin:
		return p, nil
	}

	if err := s.store.SetProfileFlag(ctx, p.ID, store.FlagAdmin, true); err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}
	p.IsAdmin = true
	slog.Info("admin flag granted at startup", "user_id", p.ID)
	return p, nil
}

func (s *Service) createProfile(ctx context.Context, req models.CreateProfileRequest, isAdmin bool) (models.Profile, error) {
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return models.Profile{}, err
	}
	name, err := normalizeDisplayName(req.DisplayName)
	if err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	err = s.store.InTx(ctx, func(tx *store.Store) error {
		p, err := tx.CreateProfile(ctx, phone, name, isAdmin)
		if err != nil {
			return fromStore(err, "profile")
		}
		if _, err := tx.ClaimInvite(ctx, phone); err != nil {
			return fromStore(err, "invite")
		}
		profile = p
		return nil
	})
	if err != nil {
		return models.Profile{}, err
	}

	s.notify(ctx, feed.TableProfile, feed.ActionInsert, "", profile.ID)
	slog.Info("profile created", "user_id", profile.ID, "display_name", profile.DisplayName, "is_admin", isAdmin)
	return profile, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	return p, fromStore(err, "profile")
}

// SimulationTarget loads the profile an admin wants to act as. The caller
// mints the short-lived token; the scoring rules still apply to it as to
// that player.
func (s *Service) SimulationTarget(ctx context.Context, actorID, userID string) (models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Profile{}, err
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}

	slog.Info("user simulation started", "user_id", userID, "by", actorID)
	return p, nil
}

// ListProfiles returns every profile by display name, for the admin roster.
func (s *Service) ListProfiles(ctx context.Context, actorID string) ([]models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	profiles, err := s.store.ListProfiles(ctx)
	return profiles, fromStore(err, "profiles")
}

// UpdateDisplayName lets a player rename themselves.
func (s *Service) UpdateDisplayName(ctx context.Context, userID, displayName string) (models.Profile, error) {
	name, err := normalizeDisplayName(displayName)
	if err != nil {
		return models.Profile{}, err
	}
	if err := s.store.UpdateDisplayName(ctx, userID, name); err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}

	s.notify(ctx, feed.TableProfile, feed.ActionUpdate, "", userID)
	return p, nil
}

// DeleteProfile removes a player along with their picks and chat messages.
// Admins cannot delete themselves.
func (s *Service) DeleteProfile(ctx context.Context, actorID, userID string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if actorID == userID {
		return invalid("cannot delete your own profile")
	}
	if err := s.store.DeleteProfile(ctx, userID); err != nil {
		return fromStore(err, "profile")
	}

	s.notify(ctx, feed.TableProfile, feed.ActionDelete, "", userID)
	slog.Info("profile deleted", "user_id", userID, "by", actorID)
	return nil
}

// SetPaid records whether a player has paid the entry fee. Only paid
// players count toward the pot.
func (s *Service) SetPaid(ctx context.Context, actorID, userID string, paid bool) (models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Profile{}, err
	}
	return s.setFlag(ctx, actorID, userID, store.FlagPaid, paid)
}

// SetAdmin grants or revokes the admin flag. Admins cannot revoke their
// own flag.
func (s *Service) SetAdmin(ctx context.Context, actorID, userID string, admin bool) (models.Profile, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Profile{}, err
	}
	if actorID == userID && !admin {
		return models.Profile{}, invalid("cannot revoke your own admin access")
	}
	return s.setFlag(ctx, actorID, userID, store.FlagAdmin, admin)
}

func (s *Service) setFlag(ctx context.Context, actorID, userID, flag string, value bool) (models.Profile, error) {
	if err := s.store.SetProfileFlag(ctx, userID, flag, value); err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fromStore(err, "profile")
	}

	s.notify(ctx, feed.TableProfile, feed.ActionUpdate, "", userID)
	slog.Info("profile flag changed", "user_id", userID, "flag", flag, "value", value, "by", actorID)
	return p, nil
}
