// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/store"
)

// ActiveContest returns the one contest players are currently playing.
func (s *Service) ActiveContest(ctx context.Context) (models.Contest, error) {
	c, err := s.store.GetActiveContest(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return models.Contest{}, ErrNoActiveContest
	}
	return c, fromStore(err, "contest")
}

func (s *Service) GetContest(ctx context.Context, contestID string) (models.Contest, error) {
	c, err := s.store.GetContest(ctx, contestID)
	return c, fromStore(err, "contest")
}

// CreateContest creates an inactive, unlocked contest.
func (s *Service) CreateContest(ctx context.Context, actorID string, req models.CreateContestRequest) (models.Contest, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Contest{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Contest{}, invalid("contest name is required")
	}
	if req.EntryFee.IsNegative() {
		return models.Contest{}, invalid("entry fee must not be negative")
	}

	c, err := s.store.CreateContest(ctx, name, req.Year, req.EntryFee.Round(2))
	if err != nil {
		return models.Contest{}, fromStore(err, "contest")
	}

	s.notify(ctx, feed.TableContest, feed.ActionInsert, c.ID, c.ID)
	slog.Info("contest created", "contest_id", c.ID, "name", c.Name, "year", c.Year)
	return c, nil
}

// ActivateContest makes contestID the active contest. It is rejected while
// a different contest is active; activating the active contest is a no-op.
func (s *Service) ActivateContest(ctx context.Context, actorID, contestID string) (models.Contest, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Contest{}, err
	}

	var contest models.Contest
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		c, err := tx.GetContest(ctx, contestID)
		if err != nil {
			return fromStore(err, "contest")
		}
		if c.IsActive {
			contest = c
			return nil
		}

		active, err := tx.GetActiveContest(ctx)
		switch {
		case err == nil:
			slog.Info("activation rejected", "contest_id", contestID, "active_contest_id", active.ID)
			return ErrContestActive
		case !errors.Is(err, store.ErrNotFound):
			return fromStore(err, "contest")
		}

		if err := tx.SetContestActive(ctx, contestID, true); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrContestActive
			}
			return fromStore(err, "contest")
		}
		c.IsActive = true
		contest = c
		return nil
	})
	if err != nil {
		return models.Contest{}, err
	}

	s.notify(ctx, feed.TableContest, feed.ActionUpdate, contestID, contestID)
	slog.Info("contest activated", "contest_id", contestID)
	return contest, nil
}

// DeactivateContest archives a contest by clearing its active flag.
func (s *Service) DeactivateContest(ctx context.Context, actorID, contestID string) (models.Contest, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Contest{}, err
	}

	if err := s.store.SetContestActive(ctx, contestID, false); err != nil {
		return models.Contest{}, fromStore(err, "contest")
	}
	c, err := s.store.GetContest(ctx, contestID)
	if err != nil {
		return models.Contest{}, fromStore(err, "contest")
	}

	s.notify(ctx, feed.TableContest, feed.ActionUpdate, contestID, contestID)
	slog.Info("contest deactivated", "contest_id", contestID)
	return c, nil
}

// SetLocked toggles whether picks are accepted. Locking stamps the lock
// time. Unlocking a locked contest needs confirm, mirroring the prompt the
// admin sees.
func (s *Service) SetLocked(ctx context.Context, actorID, contestID string, locked, confirm bool) (models.Contest, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.Contest{}, err
	}

	var contest models.Contest
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		c, err := tx.GetContest(ctx, contestID)
		if err != nil {
			return fromStore(err, "contest")
		}
		if c.PicksLocked && !locked && !confirm {
			return invalid("unlocking a locked contest requires confirm")
		}

		var lockTime *time.Time
		if locked {
			lockTime = c.PicksLockTime
			if !c.PicksLocked || lockTime == nil {
				now := time.Now().UTC()
				lockTime = &now
			}
		}
		if err := tx.SetContestLocked(ctx, contestID, locked, lockTime); err != nil {
			return fromStore(err, "contest")
		}

		c.PicksLocked = locked
		c.PicksLockTime = lockTime
		contest = c
		return nil
	})
	if err != nil {
		return models.Contest{}, err
	}

	s.notify(ctx, feed.TableContest, feed.ActionUpdate, contestID, contestID)
	slog.Info("contest lock changed", "contest_id", contestID, "locked", locked)
	return contest, nil
}

// UpdateSettings applies the non-nil fields of req. Percentages that do not
// add up to 100 are saved anyway and reported back as a warning.
func (s *Service) UpdateSettings(ctx context.Context, actorID, contestID string, req models.UpdateSettingsRequest) (models.SettingsResponse, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return models.SettingsResponse{}, err
	}

	var contest models.Contest
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		c, err := tx.GetContest(ctx, contestID)
		if err != nil {
			return fromStore(err, "contest")
		}
		if err := applySettings(&c, req); err != nil {
			return err
		}
		if err := tx.UpdateContestSettings(ctx, c); err != nil {
			return fromStore(err, "contest")
		}
		contest = c
		return nil
	})
	if err != nil {
		return models.SettingsResponse{}, err
	}

	warning := PercentWarning(contest)
	if warning != "" {
		slog.Warn("payout percentages do not total 100", "contest_id", contestID, "total", PercentTotal(contest))
	}

	s.notify(ctx, feed.TableContest, feed.ActionUpdate, contestID, contestID)
	return models.SettingsResponse{Contest: contest, Warning: warning}, nil
}

func applySettings(c *models.Contest, req models.UpdateSettingsRequest) error {
	if req.EntryFee != nil {
		if req.EntryFee.IsNegative() {
			return invalid("entry fee must not be negative")
		}
		c.EntryFee = req.EntryFee.Round(2)
	}

	for _, pct := range []struct {
		value *int
		dst   *int
	}{
		{req.PayoutFirst, &c.PayoutFirst},
		{req.PayoutSecond, &c.PayoutSecond},
		{req.PayoutThird, &c.PayoutThird},
	} {
		if pct.value == nil {
			continue
		}
		if *pct.value < 0 || *pct.value > 100 {
			return invalid("payout percentage %d out of range", *pct.value)
		}
		*pct.dst = *pct.value
	}

	switch {
	case req.ClearPayoutLast:
		c.PayoutLast = nil
	case req.PayoutLast != nil:
		if req.PayoutLast.IsNegative() {
			return invalid("last place refund must not be negative")
		}
		refund := req.PayoutLast.Round(2)
		c.PayoutLast = &refund
	}

	if req.VenmoUsername != nil {
		c.VenmoUsername = optional(*req.VenmoUsername)
	}
	if req.PaypalUsername != nil {
		c.PaypalUsername = optional(*req.PaypalUsername)
	}
	if req.LandingMessage != nil {
		c.LandingMessage = optional(*req.LandingMessage)
	}
	if req.PreviousWinners != nil {
		c.PreviousWinners = optional(*req.PreviousWinners)
	}
	return nil
}

// optional trims s and maps blank to nil.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
